package action

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/loki/internal/builderr"
	"github.com/vk/loki/internal/ctxlog"
	"github.com/vk/loki/internal/manifest"
	"github.com/vk/loki/internal/toolchain"
)

// CompileToObject compiles Input into an object file inside OutputDir.
type CompileToObject struct {
	Project   *manifest.Project
	Input     string
	OutputDir string
	Toolchain toolchain.Toolchain
}

// ObjectName maps a source path to its object file name: src/util/str.c
// becomes str.o.
func ObjectName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".o"
}

// ObjectPath is the object file this action writes.
func (a *CompileToObject) ObjectPath() string {
	return filepath.Join(a.OutputDir, ObjectName(a.Input))
}

// Args returns the driver arguments for the compile.
func (a *CompileToObject) Args() []string {
	args := []string{a.Project.Configuration.Optimization.Flag()}
	args = append(args, a.Toolchain.CFlags...)
	return append(args, "-c", a.Input, "-o", a.ObjectPath())
}

// Execute implements Action.
func (a *CompileToObject) Execute(ctx context.Context) (int, error) {
	return invoke(ctx, a.Toolchain, "compile", a.Input, a.Args())
}

// Describe implements Action.
func (a *CompileToObject) Describe() string {
	return "compile " + a.Input
}

// Kind implements Action.
func (a *CompileToObject) Kind() Kind { return KindCompile }

// LinkToBinary links object files into the executable at Output.
type LinkToBinary struct {
	Project   *manifest.Project
	Inputs    []string
	Output    string
	Toolchain toolchain.Toolchain
}

// Args returns the driver arguments for the link.
func (a *LinkToBinary) Args() []string {
	args := []string{a.Project.Configuration.Optimization.Flag()}
	args = append(args, a.Inputs...)
	args = append(args, "-o", a.Output)
	return append(args, a.Toolchain.LDFlags...)
}

// Execute implements Action.
func (a *LinkToBinary) Execute(ctx context.Context) (int, error) {
	return invoke(ctx, a.Toolchain, "link", a.Output, a.Args())
}

// Describe implements Action.
func (a *LinkToBinary) Describe() string {
	return "link " + a.Output
}

// Kind implements Action.
func (a *LinkToBinary) Kind() Kind { return KindLink }

// invoke runs the driver once. A tool that cannot start is a spawn error; a
// tool that exits non-zero or dies from a signal is a tool exit error carrying
// its stderr. Diagnostics printed by a successful tool are logged as warnings.
func invoke(ctx context.Context, tc toolchain.Toolchain, op, subject string, args []string) (int, error) {
	logger := ctxlog.FromContext(ctx)
	runner := tc.Runner
	if runner == nil {
		runner = toolchain.NewExecRunner()
	}
	driver := tc.Driver()

	logger.Debug("Invoking toolchain.", "op", op, "binary", driver, "args", args)
	res, err := runner.Run(ctx, toolchain.Command{Binary: driver, Args: args})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%s %s interrupted: %w", op, subject, ctxErr)
		}
		return 0, builderr.Spawn(op+" "+subject, driver, err)
	}
	if res.Signal != "" {
		return res.ExitCode, builderr.Signaled(op, subject, res.Signal, string(res.Stderr))
	}
	if res.ExitCode != 0 {
		return res.ExitCode, builderr.ToolExit(op, subject, res.ExitCode, string(res.Stderr))
	}

	if stderr := strings.TrimSpace(string(res.Stderr)); stderr != "" {
		logger.Warn("Toolchain reported diagnostics.", "op", op, "subject", subject, "stderr", stderr)
	}
	if stdout := strings.TrimSpace(string(res.Stdout)); stdout != "" {
		logger.Debug("Toolchain output.", "op", op, "subject", subject, "stdout", stdout)
	}
	logger.Debug("Toolchain finished.", "op", op, "subject", subject, "duration", res.Duration)
	return res.ExitCode, nil
}
