// Package executor runs a build graph: dependencies first, in list order, one
// action at a time, stopping at the first failure.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/loki/internal/builderr"
	"github.com/vk/loki/internal/ctxlog"
	"github.com/vk/loki/internal/graph"
)

// Report describes one run of a graph.
type Report struct {
	// Order lists the nodes whose actions ran, in the order they ran.
	Order []graph.NodeID
	// Statuses is indexed by NodeID.
	Statuses []Status
	// ExitCode is the root action's exit code on success, or the failing
	// tool's exit code (1 if the failure carried none, or the tool was killed
	// by a signal) otherwise.
	ExitCode int
	// Failed is the node whose action failed, or graph.None.
	Failed   graph.NodeID
	Duration time.Duration
}

// Executor walks a graph depth-first. Every node runs at most once per Run,
// however many dependents share it.
type Executor struct {
	// OnTransition, if set, observes every status change.
	OnTransition func(id graph.NodeID, from, to Status)
}

// New creates an Executor.
func New() *Executor {
	return &Executor{}
}

type frame struct {
	id   graph.NodeID
	next int
}

// Run executes the graph's root and, before it, everything the root depends
// on. For any node, all of its dependencies have succeeded before its action
// starts; siblings run in list order. The first failing action aborts the
// walk: nothing that has not started by then is started afterwards.
func (e *Executor) Run(ctx context.Context, g *graph.Graph) (*Report, error) {
	return e.RunFrom(ctx, g, g.Root())
}

// RunFrom is Run with an explicit starting node.
func (e *Executor) RunFrom(ctx context.Context, g *graph.Graph, root graph.NodeID) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	report := &Report{
		Statuses: make([]Status, g.Len()),
		Failed:   graph.None,
	}
	if !g.Has(root) {
		return report, fmt.Errorf("executor: root node %d not in graph", root)
	}

	set := func(id graph.NodeID, to Status) {
		from := report.Statuses[id]
		report.Statuses[id] = to
		if e.OnTransition != nil {
			e.OnTransition(id, from, to)
		}
	}

	logger.Debug("Executor starting run.", "root", root, "node_count", g.Len())

	// The explicit stack replaces recursion: each frame is a node whose
	// dependency list is being walked, next is the index of the dependency
	// to look at.
	stack := []frame{{id: root}}
	set(root, DependenciesRunning)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node, _ := g.Node(top.id)

		if top.next < len(node.Dependencies) {
			dep := node.Dependencies[top.next]
			top.next++

			switch report.Statuses[dep] {
			case Succeeded:
				logger.Debug("Dependency already satisfied.", "node", node.String(), "dependency", dep)
			case Pending:
				set(dep, DependenciesRunning)
				stack = append(stack, frame{id: dep})
			default:
				// Add never lets a node reference itself or a later node.
				return report, fmt.Errorf("executor: node %d reached while %s", dep, report.Statuses[dep])
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, fmt.Errorf("build interrupted before %s: %w", node.Action.Describe(), err)
		}

		set(top.id, Running)
		logger.Info("Running.", "node", int(top.id), "kind", node.Action.Kind(), "action", node.Action.Describe())
		actionStart := time.Now()
		code, err := node.Action.Execute(ctx)
		report.Order = append(report.Order, top.id)

		if err != nil {
			set(top.id, Failed)
			report.Failed = top.id
			report.ExitCode = code
			if c, ok := builderr.ExitCodeOf(err); ok {
				report.ExitCode = c
			}
			if report.ExitCode <= 0 {
				report.ExitCode = 1
			}
			report.Duration = time.Since(start)
			logger.Error("Action failed.", "node", int(top.id), "kind", node.Action.Kind(), "action", node.Action.Describe(), "error", err)
			return report, fmt.Errorf("%s: %w", node.Action.Describe(), err)
		}

		set(top.id, Succeeded)
		logger.Debug("Action succeeded.", "node", int(top.id), "duration", time.Since(actionStart))
		report.ExitCode = code
		stack = stack[:len(stack)-1]
	}

	report.Duration = time.Since(start)
	logger.Debug("Executor finished run.", "executed", len(report.Order), "duration", report.Duration)
	return report, nil
}
