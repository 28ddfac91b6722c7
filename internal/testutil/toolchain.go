package testutil

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/vk/loki/internal/toolchain"
)

// FakeRunner is a toolchain.Runner that records every command instead of
// spawning a process.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []toolchain.Command

	// ExitCode decides the exit status of a command. Nil means always 0.
	ExitCode func(cmd toolchain.Command) int
	// SpawnErr, when set, is returned as if the binary could not start.
	SpawnErr error
	// Stderr is reported for every command that runs.
	Stderr string
	// Signal, when set, reports every command as killed by that signal.
	Signal string
	// WriteOutputs makes successful commands create the file named by "-o",
	// so tests can observe artifacts on disk.
	WriteOutputs bool
}

// Run implements toolchain.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd toolchain.Command) (*toolchain.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	f.mu.Unlock()

	if f.SpawnErr != nil {
		return nil, f.SpawnErr
	}

	if f.Signal != "" {
		return &toolchain.Result{ExitCode: -1, Signal: f.Signal, Stderr: []byte(f.Stderr)}, nil
	}

	code := 0
	if f.ExitCode != nil {
		code = f.ExitCode(cmd)
	}
	if code != 0 {
		return &toolchain.Result{ExitCode: code, Stderr: []byte(f.Stderr)}, nil
	}

	if f.WriteOutputs {
		if out := OutputOf(cmd.Args); out != "" {
			if err := os.WriteFile(out, []byte(strings.Join(cmd.Args, " ")), 0o755); err != nil {
				return &toolchain.Result{ExitCode: 1, Stderr: []byte(err.Error())}, nil
			}
		}
	}
	return &toolchain.Result{Stderr: []byte(f.Stderr)}, nil
}

// Outputs returns the "-o" target of every recorded call, in call order.
func (f *FakeRunner) Outputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	outs := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		outs = append(outs, OutputOf(c.Args))
	}
	return outs
}

// OutputOf returns the argument following "-o", or "" if there is none.
func OutputOf(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-o" {
			return args[i+1]
		}
	}
	return ""
}

// FailWhenArgsContain returns an ExitCode func failing with code for any
// command whose arguments include arg.
func FailWhenArgsContain(arg string, code int) func(toolchain.Command) int {
	return func(cmd toolchain.Command) int {
		for _, a := range cmd.Args {
			if a == arg {
				return code
			}
		}
		return 0
	}
}
