package scb

import (
	"bytes"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnixTool(t *testing.T, name string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found", name)
	}
}

func TestShellExecutor(t *testing.T) {
	t.Run("exit status", func(t *testing.T) {
		requireUnixTool(t, "false")

		executor := NewShellExecutor()
		status, err := executor.Execute(testContext(t), Command{Args: []string{"false"}})
		require.NoError(t, err)
		assert.NotEqual(t, 0, status)

		requireUnixTool(t, "true")
		status, err = executor.Execute(testContext(t), Command{Args: []string{"true"}})
		require.NoError(t, err)
		assert.Equal(t, 0, status)
	})

	t.Run("arguments aren't reinterpreted", func(t *testing.T) {
		requireUnixTool(t, "printf")

		stdout := bytes.Buffer{}
		executor := &ShellExecutor{Stdout: &stdout, Stderr: &stdout}
		status, err := executor.Execute(testContext(t), Command{Args: []string{"printf", "%s|", "a b", "$HOME", "*"}})
		require.NoError(t, err)
		assert.Equal(t, 0, status)
		assert.Equal(t, "a b|$HOME|*|", stdout.String())
	})

	t.Run("working directory", func(t *testing.T) {
		requireUnixTool(t, "pwd")

		dir := t.TempDir()
		stdout := bytes.Buffer{}
		executor := &ShellExecutor{Dir: dir, Stdout: &stdout}
		status, err := executor.Execute(testContext(t), Command{Args: []string{"pwd"}})
		require.NoError(t, err)
		assert.Equal(t, 0, status)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout.String()), strings.TrimPrefix(dir, "/private")))
	})

	t.Run("unknown command", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("needs POSIX tools")
		}

		stderr := bytes.Buffer{}
		executor := &ShellExecutor{Stderr: &stderr}
		status, err := executor.Execute(testContext(t), Command{Args: []string{"scb-does-not-exist"}})
		require.NoError(t, err)
		assert.Equal(t, 127, status)
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := NewShellExecutor().Execute(testContext(t), Command{})
		require.Error(t, err)
	})
}
