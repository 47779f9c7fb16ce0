package scb

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

const globMeta = "*?["

// expandSources splits the value of a sources directive into paths. Glob patterns (including **) are
// resolved relative to the working directory; plain paths are passed through untouched so that a
// missing file is reported when it's opened.
func expandSources(ctx context.Context, list string) ([]string, error) {
	result := []string{}
	cfg := expand.Config{
		ReadDir:  ioutil.ReadDir,
		GlobStar: true,
	}
	parser := syntax.NewParser()

	for _, item := range strings.Fields(list) {
		if !strings.ContainsAny(item, globMeta) {
			result = append(result, item)
			continue
		}

		pattern := filepath.ToSlash(item)
		words := make([]*syntax.Word, 0, 1)
		err := parser.Words(strings.NewReader(pattern), func(w *syntax.Word) bool {
			words = append(words, w)
			return true
		})
		if err != nil {
			return nil, eris.Wrapf(err, "failed to parse source pattern %s", item)
		}

		matches, err := expand.Fields(&cfg, words...)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to resolve source pattern %s", item)
		}

		// a pattern without matches is returned as-is
		if len(matches) == 0 || (len(matches) == 1 && matches[0] == pattern) {
			Logger(ctx).Warn().Str("pattern", item).Msg("source pattern did not match any files")
			continue
		}

		for _, match := range matches {
			result = append(result, filepath.FromSlash(match))
		}
	}

	return result, nil
}
