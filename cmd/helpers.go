package cmd

import (
	"context"
	"io"
	"os"

	"github.com/aidarkhanov/nanoid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/scb/pkg/scb"
	"github.com/ngld/scb/pkg/settings"
)

// loadSettings reads scb.toml and the environment and applies the flags passed on the command line.
func loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("build-dir") {
		cfg.BuildDir, err = flags.GetString("build-dir")
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("log-level") {
		cfg.Log.Level, err = flags.GetString("log-level")
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("json") {
		cfg.Log.JSON, err = flags.GetBool("json")
		if err != nil {
			return nil, err
		}
	}

	if flags.Lookup("progress") != nil && flags.Changed("progress") {
		cfg.Progress, err = flags.GetBool("progress")
		if err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg *settings.Settings, out io.Writer) zerolog.Logger {
	var writer io.Writer = out
	if !cfg.Log.JSON {
		writer = NewConsoleWriter(out, true)
	}

	return zerolog.New(writer).Level(cfg.LogLevel()).With().Str("run", nanoid.New()).Logger()
}

type session struct {
	ctx      context.Context
	logger   *zerolog.Logger
	builder  *scb.Builder
	settings *settings.Settings
}

// setup prepares the settings, the logger and a builder for the current command. Settings errors are
// returned before a logger exists so they're printed by cobra.
func setup(cmd *cobra.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, os.Stderr)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	builder := scb.NewBuilder(scb.NewShellExecutor())
	builder.BuildDir = cfg.BuildDir
	builder.ObjectSuffix = cfg.ObjectSuffix

	logger.Debug().
		Str("platform", builder.Platform.String()).
		Str("build_dir", builder.BuildDir).
		Msg("settings loaded")

	return &session{
		ctx:      scb.WithLogger(ctx, &logger),
		logger:   &logger,
		builder:  builder,
		settings: cfg,
	}, nil
}
