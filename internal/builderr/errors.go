// Package builderr defines the error taxonomy shared by every stage of a build:
// locating and parsing the manifest, touching the filesystem and running the
// external toolchain.
package builderr

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrManifestParse    = errors.New("manifest parse error")
	ErrIO               = errors.New("io error")
	ErrProcessSpawn     = errors.New("process spawn error")
	ErrToolExit         = errors.New("tool exit error")
)

// Error carries the kind of a build failure together with the context needed
// to print a useful message: the operation, the path it touched and, for tool
// failures, the exit code and captured stderr.
type Error struct {
	Kind     error
	Op       string
	Path     string
	ExitCode int
	// Signal names the signal that killed the tool, if one did.
	Signal   string
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	switch {
	case e.Signal != "":
		fmt.Fprintf(&b, ": killed by signal %s", e.Signal)
	case errors.Is(e.Kind, ErrToolExit):
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		b.WriteString("\n")
		b.WriteString(stderr)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IO wraps a filesystem failure.
func IO(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// Spawn wraps a failure to start an external tool.
func Spawn(op, binary string, err error) error {
	return &Error{Kind: ErrProcessSpawn, Op: op, Path: binary, Err: err}
}

// ToolExit reports an external tool that ran but returned a failing status.
func ToolExit(op, path string, code int, stderr string) error {
	return &Error{Kind: ErrToolExit, Op: op, Path: path, ExitCode: code, Stderr: stderr}
}

// Signaled reports an external tool terminated by a signal before it could
// exit on its own.
func Signaled(op, path, signal, stderr string) error {
	return &Error{Kind: ErrToolExit, Op: op, Path: path, ExitCode: -1, Signal: signal, Stderr: stderr}
}

// ExitCodeOf returns the tool exit code carried by err, if any. A tool killed
// by a signal has no exit code.
func ExitCodeOf(err error) (int, bool) {
	var be *Error
	if errors.As(err, &be) && errors.Is(be.Kind, ErrToolExit) && be.Signal == "" {
		return be.ExitCode, true
	}
	return 0, false
}
