package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteProject creates a temporary project directory holding files, keyed by
// slash-separated relative path, and returns its root.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// ClearToolEnv blanks the environment variables that configure the compiler
// driver and logging so the host environment cannot leak into a test.
func ClearToolEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"LOKI_CC", "CC",
		"LOKI_CFLAGS", "CFLAGS",
		"LOKI_LDFLAGS", "LDFLAGS",
		"LOKI_LOG_LEVEL", "LOKI_LOG_FORMAT",
	} {
		t.Setenv(env, "")
	}
}
