package scb

import (
	"bufio"
	"context"
	"os"

	"github.com/rotisserie/eris"
)

const maxLineLength = 1024 * 1024

// Resolver reads directives from source files for a fixed host platform.
type Resolver struct {
	Platform Platform
}

// NewResolver returns a resolver for the platform this binary runs on.
func NewResolver() Resolver {
	return Resolver{Platform: HostPlatform()}
}

// scanDirectives calls fn for each directive in path that applies to the resolver's platform.
func (r Resolver) scanDirectives(path string, fn func(Directive) error) error {
	handle, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "failed to open %s", path)
	}
	defer handle.Close()

	scanner := bufio.NewScanner(handle)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		directive, ok := ParseDirective(scanner.Text())
		if !ok || !directive.AppliesTo(r.Platform) {
			continue
		}

		if err := fn(directive); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return eris.Wrapf(err, "failed to read %s", path)
	}
	return nil
}

// ResolveGlobal reads the project-wide directives from the entry file. The returned config lists the
// entry file and every file named by a sources directive but has no file configs yet.
func (r Resolver) ResolveGlobal(ctx context.Context, entry string) (*GlobalConfig, error) {
	cfg := &GlobalConfig{
		SourcePaths: []string{entry},
	}

	err := r.scanDirectives(entry, func(d Directive) error {
		switch d.Name {
		case "output":
			cfg.Output = d.Value
		case "sources":
			paths, err := expandSources(ctx, d.Value)
			if err != nil {
				return err
			}
			cfg.SourcePaths = append(cfg.SourcePaths, paths...)
		case "global-cc":
			cfg.CC = d.Value
		case "ld":
			cfg.LD = d.Value
		case "global-cflags":
			cfg.CFlags = d.Value
		case "global-ldflags":
			cfg.LDFlags = d.Value
		default:
			Logger(ctx).Debug().Str("file", entry).Msgf("ignoring directive @%s", d.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.CC == "" {
		cfg.CC = r.Platform.DefaultCompiler()
	}
	if cfg.LD == "" {
		cfg.LD = r.Platform.DefaultLinker()
	}

	return cfg, nil
}

// ResolveFile reads the per-file directives (cc, cflags and ldflags) from path.
func (r Resolver) ResolveFile(ctx context.Context, path string) (*FileConfig, error) {
	file := &FileConfig{Filepath: path}

	err := r.scanDirectives(path, func(d Directive) error {
		switch d.Name {
		case "cc":
			file.CC = d.Value
		case "cflags":
			file.CFlags = d.Value
		case "ldflags":
			file.LDFlags = d.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Resolve reads the complete configuration starting at entry. The first file that can't be read
// aborts the resolution.
func (r Resolver) Resolve(ctx context.Context, entry string) (*GlobalConfig, error) {
	cfg, err := r.ResolveGlobal(ctx, entry)
	if err != nil {
		return nil, err
	}

	cfg.FileConfigs = make([]*FileConfig, 0, len(cfg.SourcePaths))
	for _, path := range cfg.SourcePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := r.ResolveFile(ctx, path)
		if err != nil {
			return nil, err
		}

		cfg.FileConfigs = append(cfg.FileConfigs, file)
	}

	return cfg, nil
}
