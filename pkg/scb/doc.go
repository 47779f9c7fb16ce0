// Package scb implements a small build driver for C projects that keep their build configuration
// in comments inside the source files themselves.
// Directives look like `// SCB: @output(app)` and may be restricted to a platform with
// `// SCB: @cc(clang, platform=unix)`. The entry file declares the project-wide settings and lists
// the remaining sources, every source may add its own compiler and flags.
package scb
