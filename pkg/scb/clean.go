package scb

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// Clean removes the object files of all sources in cfg and the linked output. Missing files are
// ignored.
func (b *Builder) Clean(ctx context.Context, cfg *GlobalConfig) error {
	items := make([]string, 0, len(cfg.SourcePaths)+1)
	for _, source := range cfg.SourcePaths {
		items = append(items, b.ObjectPath(source))
	}
	if cfg.Output != "" {
		items = append(items, b.ExecutablePath(cfg.Output))
	}

	for _, item := range items {
		info, err := os.Stat(item)
		if err != nil {
			if eris.Is(err, os.ErrNotExist) {
				continue
			}
			return eris.Wrapf(err, "could not stat %s", item)
		}

		if info.IsDir() {
			return eris.Errorf("%s is a directory, refusing to delete it", item)
		}

		Logger(ctx).Info().Str("step", "clean").Msgf("removing %s", item)
		if b.DryRun {
			continue
		}

		if err := os.Remove(item); err != nil {
			return eris.Wrapf(err, "could not delete %s", item)
		}
	}

	return nil
}
