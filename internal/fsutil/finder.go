// Package fsutil discovers the source files a build compiles.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/loki/internal/builderr"
)

// FindFilesByExtension recursively searches rootPath for regular files whose
// name ends with extension. A symlink counts when its target is a regular
// file; symlinked directories are not descended into. Paths are returned in
// filepath.WalkDir order, which is lexical within each directory.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return builderr.IO("discover sources", path, err)
		}
		if !strings.HasSuffix(d.Name(), extension) {
			return nil
		}
		regular := d.Type().IsRegular()
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return builderr.IO("discover sources", path, err)
			}
			regular = info.Mode().IsRegular()
		}
		if regular {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
