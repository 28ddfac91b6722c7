package manifest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/loki/internal/builderr"
	"github.com/vk/loki/internal/ctxlog"
)

// Location is a manifest found on disk and the project directory holding it.
type Location struct {
	Dir  string
	Path string
}

// Locate searches start and every ancestor of start for a manifest.
//
// All matching directories are collected and the outermost one wins, so a
// nested project inside a larger one builds the larger one.
func Locate(ctx context.Context, start string) (Location, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(start)
	if err != nil {
		return Location{}, builderr.IO("resolve working directory", start, err)
	}

	var matches []Location
	for dir := abs; ; {
		if path, ok, err := manifestIn(dir); err != nil {
			return Location{}, err
		} else if ok {
			logger.Debug("Found manifest candidate.", "path", path)
			matches = append(matches, Location{Dir: dir, Path: path})
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(matches) == 0 {
		return Location{}, &builderr.Error{
			Kind: builderr.ErrManifestNotFound,
			Op:   "no " + TOMLFile + " or " + HCLFile + " in this directory or any parent",
			Path: abs,
		}
	}

	found := matches[len(matches)-1]
	logger.Debug("Selected project directory.", "dir", found.Dir, "candidates", len(matches))
	return found, nil
}

func manifestIn(dir string) (string, bool, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, true, nil
		case err == nil, errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
			continue
		default:
			return "", false, builderr.IO("stat manifest", path, err)
		}
	}
	return "", false, nil
}
