package scb

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// CompileDBEntry is a single entry of a clang compilation database (compile_commands.json).
type CompileDBEntry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Output    string   `json:"output"`
}

// CompileDatabase returns the compile command of every source in cfg. Files without a usable compile
// command are left out.
func (b *Builder) CompileDatabase(ctx context.Context, cfg *GlobalConfig) ([]CompileDBEntry, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, eris.Wrap(err, "failed to retrieve the current working directory")
	}

	entries := make([]CompileDBEntry, 0, len(cfg.FileConfigs))
	for _, file := range cfg.FileConfigs {
		object := b.ObjectPath(file.Filepath)
		cmd, err := CompileCommand(cfg, file, object)
		if err != nil {
			Logger(ctx).Warn().Err(err).Str("file", file.Filepath).Msg("left out of the compilation database")
			continue
		}

		source := file.Filepath
		if !filepath.IsAbs(source) {
			source = filepath.Join(wd, source)
		}

		entries = append(entries, CompileDBEntry{
			Directory: wd,
			File:      source,
			Arguments: cmd.Args,
			Output:    object,
		})
	}

	return entries, nil
}
