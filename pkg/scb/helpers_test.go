package scb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0770))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0660))
	return path
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return WithLogger(context.Background(), &logger)
}

// recordingExecutor remembers every command. With touch set, it creates the file passed after -o like a
// real compiler or linker would.
type recordingExecutor struct {
	t        *testing.T
	commands []Command
	status   map[string]int
	touch    bool
}

func (e *recordingExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	e.commands = append(e.commands, cmd)

	if e.touch {
		for idx, arg := range cmd.Args {
			if arg == outputFlag && idx+1 < len(cmd.Args) {
				path := cmd.Args[idx+1]
				require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0770))
				require.NoError(e.t, os.WriteFile(path, []byte(cmd.String()), 0660))
			}
		}
	}

	return e.status[cmd.Args[0]], nil
}

func (e *recordingExecutor) compilers() []string {
	result := []string{}
	for _, cmd := range e.commands {
		for _, arg := range cmd.Args {
			if arg == compileOnlyFlag {
				result = append(result, cmd.Args[0])
				break
			}
		}
	}

	return result
}
