package builder

import "path/filepath"

// Directory names inside a project, relative to its root.
const (
	SourceDirName = "src"
	TargetDirName = "target"
	ObjectDirName = "obj"
	SourceExt     = ".c"
)

// Layout is where a project's sources live and its outputs go.
type Layout struct {
	Root   string
	Source string
	Target string
	Object string
}

// NewLayout derives the standard layout under root.
func NewLayout(root string) Layout {
	target := filepath.Join(root, TargetDirName)
	return Layout{
		Root:   root,
		Source: filepath.Join(root, SourceDirName),
		Target: target,
		Object: filepath.Join(target, ObjectDirName),
	}
}

// Binary is the path of the linked executable for the named package.
func (l Layout) Binary(packageName string) string {
	return filepath.Join(l.Target, packageName)
}
