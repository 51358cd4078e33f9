// Package engine runs the configuration engine (ansible-playbook) against a single target.
package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Command is one external process invocation
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the current environment

	// Nil writers inherit the parent's stdout/stderr
	Stdout io.Writer
	Stderr io.Writer
}

// Runner launches a process and waits for it. A non-zero exit is reported
// through the returned code with a nil error; err is set only when the
// process could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec. Stdin is always inherited so the
// engine can ask for become and SSH passwords on the operator's terminal.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
