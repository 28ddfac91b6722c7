// Package toolchain wraps the external compiler driver that actions invoke.
// Running a process is modelled as a single blocking call behind the Runner
// interface so the build engine can be exercised without spawning real tools.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Command configures one tool invocation.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
}

// Result holds the output and status of a finished tool.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	// Signal names the signal that terminated the process, if any. ExitCode is
	// -1 in that case.
	Signal   string
	Duration time.Duration
}

// Runner runs a tool and waits for it to exit.
//
// A non-nil error means the process could not be started. A process that ran
// and exited with a non-zero status is reported through Result.ExitCode with a
// nil error, leaving the caller to decide what a failing status means.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

// NewExecRunner creates a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.New("toolchain: binary is required")
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running the configured compiler is the point
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	// Bound how long a killed tool's children may keep the output pipes open.
	c.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				result.Signal = ws.Signal().String()
			}
			return result, nil
		}
		if ctx.Err() != nil {
			return result, fmt.Errorf("toolchain: %s killed by context: %w", cmd.Binary, ctx.Err())
		}
		return result, fmt.Errorf("toolchain: start %s: %w", cmd.Binary, err)
	}

	result.ExitCode = c.ProcessState.ExitCode()
	return result, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
