// Package action defines the units of build work a graph node performs:
// creating an output directory, compiling one source file and linking the
// resulting objects into a binary.
package action

import (
	"context"
	"os"

	"github.com/vk/loki/internal/builderr"
	"github.com/vk/loki/internal/ctxlog"
)

// Action is one unit of build work. Execute blocks until the work is done and
// returns the exit code of the tool it ran (0 for work done in-process).
//
// Actions are immutable once built. Executing one again redoes the work; no
// action checks whether its output is already up to date.
type Action interface {
	Execute(ctx context.Context) (int, error)
	// Describe returns a short human label, e.g. "compile src/a.c".
	Describe() string
	Kind() Kind
}

// Kind identifies what an action does, independent of its arguments.
type Kind int

const (
	KindCreateDirectory Kind = iota
	KindCompile
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindCreateDirectory:
		return "create-directory"
	case KindCompile:
		return "compile"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// CreateDirectory ensures Path and any missing ancestors exist.
type CreateDirectory struct {
	Path string
}

// Execute implements Action. An existing directory is not an error.
func (a *CreateDirectory) Execute(ctx context.Context) (int, error) {
	if err := os.MkdirAll(a.Path, 0o755); err != nil {
		return 0, builderr.IO("create directory", a.Path, err)
	}
	ctxlog.FromContext(ctx).Debug("Directory ready.", "path", a.Path)
	return 0, nil
}

// Describe implements Action.
func (a *CreateDirectory) Describe() string {
	return "create directory " + a.Path
}

// Kind implements Action.
func (a *CreateDirectory) Kind() Kind { return KindCreateDirectory }
