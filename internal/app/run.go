package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/loki/internal/builder"
	"github.com/vk/loki/internal/ctxlog"
	"github.com/vk/loki/internal/executor"
	"github.com/vk/loki/internal/manifest"
)

// Result summarises a finished build.
type Result struct {
	BuildID string
	Project *manifest.Project
	Layout  builder.Layout
	Sources []string
	Binary  string
	Report  *executor.Report
}

// Build runs one full build: every source is compiled and the binary linked,
// whether or not earlier outputs exist. The returned Result is non-nil
// whenever the graph was executed, including on failure.
func (a *App) Build(ctx context.Context) (*Result, error) {
	buildID := uuid.NewString()
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "build_id", buildID)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Build method started.")
	start := time.Now()

	ctx, p, err := a.load(ctx, buildID)
	if err != nil {
		return nil, err
	}
	logger = ctxlog.FromContext(ctx)

	tc := a.settings.Toolchain(a.config.Runner)
	g, _, err := builder.Build(ctx, p.layout, p.manifest, p.sources, tc)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", g.Len(), "cc", tc.Driver())

	res := &Result{
		BuildID: buildID,
		Project: p.manifest,
		Layout:  p.layout,
		Sources: p.sources,
		Binary:  p.layout.Binary(p.manifest.Package.Name),
	}

	res.Report, err = executor.New().Run(ctx, g)
	if err != nil {
		return res, err
	}

	logger.Info("Build finished.", "binary", res.Binary, "actions", len(res.Report.Order), "duration", time.Since(start))
	fmt.Fprintf(a.outW, "Finished %s -> %s (%d actions in %s)\n",
		p.manifest.Package.Name, res.Binary, len(res.Report.Order), res.Report.Duration.Round(time.Millisecond))
	return res, nil
}
