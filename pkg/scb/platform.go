package scb

import (
	"path/filepath"
	"runtime"
)

// Platform identifies the host class a directive can be restricted to.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformLinux
	PlatformMacOS
	PlatformWindows
)

// HostPlatform maps the GOOS this binary was built for to a Platform.
func HostPlatform() Platform {
	return PlatformFromGOOS(runtime.GOOS)
}

// PlatformFromGOOS maps a GOOS value to a Platform. Everything that isn't linux, darwin or windows is
// PlatformUnknown.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformMacOS
	case "windows":
		return PlatformWindows
	default:
		return PlatformUnknown
	}
}

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMacOS:
		return "macos"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// Matches reports whether a directive restricted to target applies on current.
// The vocabulary is closed: unknown targets never match.
func Matches(current Platform, target string) bool {
	switch target {
	case "", "default":
		return true
	case "linux":
		return current == PlatformLinux
	case "macos":
		return current == PlatformMacOS
	case "windows":
		return current == PlatformWindows
	case "unix":
		return current == PlatformLinux || current == PlatformMacOS
	}

	return false
}

// the same toolchain name is used everywhere for now but each platform gets its own entry
var defaultToolchains = map[Platform]struct{ cc, ld string }{
	PlatformLinux:   {"gcc", "gcc"},
	PlatformMacOS:   {"gcc", "gcc"},
	PlatformWindows: {"gcc", "gcc"},
	PlatformUnknown: {"cc", "cc"},
}

// DefaultCompiler returns the compiler used when no global-cc directive applies.
func (p Platform) DefaultCompiler() string {
	return defaultToolchains[p].cc
}

// DefaultLinker returns the linker used when no ld directive applies.
func (p Platform) DefaultLinker() string {
	return defaultToolchains[p].ld
}

func (p Platform) executableCandidates(output string) []string {
	if p == PlatformWindows && filepath.Ext(output) == "" {
		return []string{output, output + ".exe"}
	}

	return []string{output}
}
