package scb

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCommand(t *testing.T) {
	cfg := &GlobalConfig{CC: "gcc", CFlags: "-std=c11 -Wall"}

	t.Run("global settings only", func(t *testing.T) {
		cmd, err := CompileCommand(cfg, &FileConfig{Filepath: "src/main.c"}, "build/main.c.o")
		require.NoError(t, err)
		assert.Equal(t, []string{"gcc", "-std=c11", "-Wall", "-c", "src/main.c", "-o", "build/main.c.o"}, cmd.Args)
	})

	t.Run("file flags come after global flags", func(t *testing.T) {
		file := &FileConfig{Filepath: "util.c", CC: "clang", CFlags: "-O3 -DUTIL"}
		cmd, err := CompileCommand(cfg, file, "build/util.c.o")
		require.NoError(t, err)
		assert.Equal(t, []string{"clang", "-std=c11", "-Wall", "-O3", "-DUTIL", "-c", "util.c", "-o", "build/util.c.o"}, cmd.Args)
	})

	t.Run("quoted flags stay together", func(t *testing.T) {
		file := &FileConfig{Filepath: "a.c", CFlags: `-DNAME="hello world"`}
		cmd, err := CompileCommand(&GlobalConfig{CC: "cc"}, file, "a.o")
		require.NoError(t, err)
		assert.Equal(t, []string{"cc", "-DNAME=hello world", "-c", "a.c", "-o", "a.o"}, cmd.Args)
	})

	t.Run("compiler with wrapper", func(t *testing.T) {
		cmd, err := CompileCommand(&GlobalConfig{CC: "ccache gcc"}, &FileConfig{Filepath: "a.c"}, "a.o")
		require.NoError(t, err)
		assert.Equal(t, []string{"ccache", "gcc", "-c", "a.c", "-o", "a.o"}, cmd.Args)
	})

	t.Run("no compiler", func(t *testing.T) {
		_, err := CompileCommand(&GlobalConfig{}, &FileConfig{Filepath: "a.c"}, "a.o")
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrNoCompiler))
	})

	t.Run("unbalanced quote", func(t *testing.T) {
		_, err := CompileCommand(cfg, &FileConfig{Filepath: "a.c", CFlags: `-D"oops`}, "a.o")
		require.Error(t, err)
	})
}

func TestLinkCommand(t *testing.T) {
	t.Run("objects and flags in source order", func(t *testing.T) {
		cfg := &GlobalConfig{
			Output:  "app",
			LD:      "gcc",
			LDFlags: "-static",
			FileConfigs: []*FileConfig{
				{Filepath: "main.c", LDFlags: "-lm"},
				{Filepath: "a.c"},
				{Filepath: "b.c", LDFlags: "-lpthread -ldl"},
			},
		}

		cmd, err := LinkCommand(cfg, []string{"build/main.c.o", "build/a.c.o", "build/b.c.o"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"gcc", "build/main.c.o", "build/a.c.o", "build/b.c.o", "-o", "app",
			"-static", "-lm", "-lpthread", "-ldl",
		}, cmd.Args)
	})

	t.Run("no output", func(t *testing.T) {
		_, err := LinkCommand(&GlobalConfig{LD: "gcc"}, []string{"a.o"})
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrNoOutput))
	})

	t.Run("no linker", func(t *testing.T) {
		_, err := LinkCommand(&GlobalConfig{Output: "app"}, []string{"a.o"})
		require.Error(t, err)
	})
}

func TestCommandString(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"plain":        {[]string{"gcc", "-c", "main.c", "-o", "main.o"}, "gcc -c main.c -o main.o"},
		"spaces":       {[]string{"gcc", "-DNAME=hello world"}, "gcc '-DNAME=hello world'"},
		"dollar":       {[]string{"echo", "$HOME"}, "echo '$HOME'"},
		"empty string": {[]string{"cc", ""}, "cc ''"},
		"single quote": {[]string{"cc", `-DMSG=it's $x`}, `cc "-DMSG=it's \$x"`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Command{Args: tt.args}.String())
		})
	}
}
