package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range bindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Load("")
	require.NoError(t, err)
	want := &Settings{CC: "cc", LogLevel: "info", LogFormat: "text"}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOKI_CC", "clang")
	t.Setenv("CFLAGS", "-Wall -Wextra")
	t.Setenv("LOKI_LDFLAGS", "-lm")
	t.Setenv("LOKI_LOG_LEVEL", "DEBUG")
	t.Setenv("LOKI_LOG_FORMAT", "json")

	s, err := Load("")
	require.NoError(t, err)
	want := &Settings{
		CC:        "clang",
		CFlags:    []string{"-Wall", "-Wextra"},
		LDFlags:   []string{"-lm"},
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PrefixedVariableWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CC", "gcc")
	t.Setenv("LOKI_CC", "clang")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "clang", s.CC)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("LOKI_CC=tcc\nCFLAGS=-g\n"), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "tcc", s.CC)
	assert.Equal(t, []string{"-g"}, s.CFlags)

	// The real environment still wins over the file.
	t.Setenv("LOKI_CC", "clang")
	s, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "clang", s.CC)
	assert.Equal(t, "", os.Getenv("CFLAGS"))
}

func TestLoad_InvalidLogging(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOKI_LOG_LEVEL", "loud")
	_, err := Load("")
	assert.ErrorContains(t, err, "invalid log level")

	clearEnv(t)
	t.Setenv("LOKI_LOG_FORMAT", "yaml")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid log format")
}

func TestSettings_Toolchain(t *testing.T) {
	s := &Settings{CC: "clang", CFlags: []string{"-g"}}
	tc := s.Toolchain(nil)
	assert.Equal(t, "clang", tc.Driver())
	assert.Equal(t, []string{"-g"}, tc.CFlags)
	assert.NotNil(t, tc.Runner)
}
