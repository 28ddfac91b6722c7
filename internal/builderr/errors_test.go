package builderr

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesKindAndCause(t *testing.T) {
	err := IO("create directory", "/tmp/x", fs.ErrPermission)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrToolExit)
	assert.Equal(t, "io error: create directory (/tmp/x): permission denied", err.Error())
}

func TestError_ToolExitCarriesCodeAndStderr(t *testing.T) {
	err := ToolExit("compile", "src/a.c", 1, "a.c:1: error: expected ';'\n")

	require.ErrorIs(t, err, ErrToolExit)
	code, ok := ExitCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "expected ';'")
}

func TestError_SignaledToolHasNoExitCode(t *testing.T) {
	err := Signaled("link", "target/app", "killed", "")
	assert.ErrorIs(t, err, ErrToolExit)
	assert.EqualError(t, err, "tool exit error: link (target/app): killed by signal killed")
	_, ok := ExitCodeOf(err)
	assert.False(t, ok)
}

func TestExitCodeOf_OtherKinds(t *testing.T) {
	_, ok := ExitCodeOf(Spawn("compile", "cc", errors.New("not found")))
	assert.False(t, ok)

	_, ok = ExitCodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := Spawn("link", "cc", errors.New("executable file not found in $PATH"))
	wrapped := errors.Join(errors.New("node 3"), err)

	assert.ErrorIs(t, wrapped, ErrProcessSpawn)
}
