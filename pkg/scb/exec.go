package scb

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// Executor runs toolchain commands. The returned status is the exit status of the command; errors are
// reserved for failures that prevented the command from running at all.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (int, error)
}

// ShellExecutor runs commands through the mvdan.cc/sh interpreter. Commands are passed as argument
// vectors so no shell quoting is involved.
type ShellExecutor struct {
	// Dir is the working directory, the current one if empty.
	Dir string
	// Env defaults to the process environment if nil.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor returns an executor that inherits the process environment and output streams.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{
		Env:    os.Environ(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (e *ShellExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	call, err := cmd.callExpr()
	if err != nil {
		return -1, err
	}

	env := e.Env
	if env == nil {
		env = os.Environ()
	}

	options := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, e.Stdout, e.Stderr),
	}
	if e.Dir != "" {
		options = append(options, interp.Dir(e.Dir))
	}

	runner, err := interp.New(options...)
	if err != nil {
		return -1, eris.Wrap(err, "failed to initialize runner")
	}

	err = runner.Run(ctx, call)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, eris.Wrapf(err, "failed to run %s", cmd.Args[0])
	}

	return 0, nil
}
