package scb

import (
	"context"

	"github.com/rs/zerolog"
)

type logKey struct{}

var nopLogger = zerolog.Nop()

// Logger returns the logger attached to ctx. Without one, nothing is logged.
func Logger(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(logKey{}).(*zerolog.Logger); ok {
		return logger
	}

	return &nopLogger
}

// WithLogger attaches the given logger to the context
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, logger)
}

func fileLog(ctx context.Context, path string) zerolog.Logger {
	return Logger(ctx).With().Str("file", path).Logger()
}
