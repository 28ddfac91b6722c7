package toolchain

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireShell(t)

	res, err := NewExecRunner().Run(context.Background(), Command{
		Binary: "sh",
		Args:   []string{"-c", "echo hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", string(res.Stdout))
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	requireShell(t)

	res, err := NewExecRunner().Run(context.Background(), Command{
		Binary: "sh",
		Args:   []string{"-c", "echo broken >&2; exit 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "broken\n", string(res.Stderr))
}

func TestExecRunner_KilledBySignal(t *testing.T) {
	requireShell(t)
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX signals")
	}

	res, err := NewExecRunner().Run(context.Background(), Command{
		Binary: "sh",
		Args:   []string{"-c", "kill -KILL $$"},
	})
	require.NoError(t, err)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, "killed", res.Signal)
}

func TestExecRunner_ContextDeadline(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewExecRunner().Run(ctx, Command{
		Binary: "sh",
		Args:   []string{"-c", "exec sleep 5"},
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "killed by context")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Command{
		Binary: "definitely-not-a-real-compiler-binary",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start definitely-not-a-real-compiler-binary")
}

func TestExecRunner_EmptyBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Command{})
	assert.EqualError(t, err, "toolchain: binary is required")
}

func TestToolchain_Driver(t *testing.T) {
	assert.Equal(t, "cc", Toolchain{}.Driver())
	assert.Equal(t, "clang", Toolchain{CC: "clang"}.Driver())
	assert.Equal(t, DefaultCC, Default().Driver())
}
