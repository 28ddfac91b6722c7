package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/loki/internal/action"
	"github.com/vk/loki/internal/ctxlog"
	"github.com/vk/loki/internal/graph"
	"github.com/vk/loki/internal/manifest"
	"github.com/vk/loki/internal/toolchain"
)

var (
	// ErrNoSources means there is nothing to compile.
	ErrNoSources = errors.New("no source files found")
	// ErrDuplicateObject means two sources would write the same object file.
	ErrDuplicateObject = errors.New("duplicate object file")
)

// Handles records the notable nodes of a project graph.
type Handles struct {
	TargetDir graph.NodeID
	ObjectDir graph.NodeID
	Compiles  []graph.NodeID
	Link      graph.NodeID
}

// Build constructs the graph that compiles sources and links them into the
// project's binary. The returned graph's root is the link node.
func Build(ctx context.Context, layout Layout, project *manifest.Project, sources []string, tc toolchain.Toolchain) (*graph.Graph, *Handles, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "sources", len(sources))

	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("%w under %s", ErrNoSources, layout.Source)
	}
	if err := checkObjectNames(sources); err != nil {
		return nil, nil, err
	}

	g := graph.New()
	h := &Handles{Compiles: make([]graph.NodeID, 0, len(sources))}

	// Both directory nodes are shared by every compile node and the link node.
	h.TargetDir = g.MustAdd(&action.CreateDirectory{Path: layout.Target})
	h.ObjectDir = g.MustAdd(&action.CreateDirectory{Path: layout.Object})
	logger.Debug("Build: Directory nodes created.", "target", layout.Target, "object", layout.Object)

	objects := make([]string, 0, len(sources))
	for _, src := range sources {
		compile := &action.CompileToObject{
			Project:   project,
			Input:     src,
			OutputDir: layout.Object,
			Toolchain: tc,
		}
		h.Compiles = append(h.Compiles, g.MustAdd(compile, h.TargetDir, h.ObjectDir))
		objects = append(objects, compile.ObjectPath())
	}
	logger.Debug("Build: Compile nodes created.", "count", len(h.Compiles))

	linkDeps := append(append([]graph.NodeID(nil), h.Compiles...), h.TargetDir, h.ObjectDir)
	h.Link = g.MustAdd(&action.LinkToBinary{
		Project:   project,
		Inputs:    objects,
		Output:    layout.Binary(project.Package.Name),
		Toolchain: tc,
	}, linkDeps...)

	if err := g.SetRoot(h.Link); err != nil {
		return nil, nil, err
	}

	logger.Debug("Build: Graph construction successful.", "node_count", g.Len())
	return g, h, nil
}

// checkObjectNames rejects source sets where two files map to one object,
// e.g. src/a/util.c and src/b/util.c.
func checkObjectNames(sources []string) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		obj := action.ObjectName(src)
		if prev, ok := seen[obj]; ok {
			return fmt.Errorf("%w %s: produced by both %s and %s", ErrDuplicateObject, obj, prev, src)
		}
		seen[obj] = src
	}
	return nil
}
