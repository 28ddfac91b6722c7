package app

import (
	"context"
	"fmt"

	"github.com/vk/loki/internal/builder"
	"github.com/vk/loki/internal/ctxlog"
	"github.com/vk/loki/internal/fsutil"
	"github.com/vk/loki/internal/manifest"
	"github.com/vk/loki/internal/settings"
)

// project is everything the graph builder needs, gathered before any action
// runs.
type project struct {
	location manifest.Location
	manifest *manifest.Project
	layout   builder.Layout
	sources  []string
}

// load locates and parses the manifest, applies the project's settings and
// discovers sources. Any failure here aborts the build before a single action
// has run.
func (a *App) load(ctx context.Context, buildID string) (context.Context, *project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Locating manifest...", "start", a.config.WorkDir)

	loc, err := manifest.Locate(ctx, a.config.WorkDir)
	if err != nil {
		return ctx, nil, err
	}

	s, err := settings.Load(loc.Dir)
	if err != nil {
		return ctx, nil, fmt.Errorf("load settings: %w", err)
	}
	if s.LogLevel != a.settings.LogLevel || s.LogFormat != a.settings.LogFormat {
		a.logger = newLogger(s.LogLevel, s.LogFormat, a.logW)
		ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "build_id", buildID)
		logger = ctxlog.FromContext(ctx)
		logger.Debug("Logger reconfigured from project settings.", "level", s.LogLevel, "format", s.LogFormat)
	}
	a.settings = s

	m, err := manifest.Load(ctx, loc.Path)
	if err != nil {
		return ctx, nil, err
	}

	layout := builder.NewLayout(loc.Dir)
	sources, err := fsutil.FindFilesByExtension(layout.Source, builder.SourceExt)
	if err != nil {
		return ctx, nil, err
	}
	logger.Info("Project loaded.", "package", m.Package.Name, "root", loc.Dir, "sources", len(sources))

	return ctx, &project{location: loc, manifest: m, layout: layout, sources: sources}, nil
}
