package graph

import (
	"fmt"

	"github.com/vk/loki/internal/action"
)

// NodeID is the stable handle of a node within one Graph.
type NodeID int

// None is the zero handle returned alongside errors and by an unrooted graph.
const None NodeID = -1

// Node is a single vertex: one action and the nodes that must complete
// before it runs, in the order they must run.
type Node struct {
	ID           NodeID
	Action       action.Action
	Dependencies []NodeID
}

// Graph is an append-only arena of nodes.
type Graph struct {
	nodes []*Node
	root  NodeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{root: None}
}

// Add appends a node running act after every node in deps and returns its
// handle. Each dependency must already be in the graph.
func (g *Graph) Add(act action.Action, deps ...NodeID) (NodeID, error) {
	if act == nil {
		return None, fmt.Errorf("node %d: action must not be nil", len(g.nodes))
	}
	for _, dep := range deps {
		if !g.Has(dep) {
			return None, fmt.Errorf("node %d (%s): unknown dependency %d", len(g.nodes), act.Describe(), dep)
		}
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		ID:           id,
		Action:       act,
		Dependencies: append([]NodeID(nil), deps...),
	})
	return id, nil
}

// MustAdd is Add for callers whose dependencies come straight from earlier
// Add calls. It panics on an unknown dependency.
func (g *Graph) MustAdd(act action.Action, deps ...NodeID) NodeID {
	id, err := g.Add(act, deps...)
	if err != nil {
		panic(err)
	}
	return id
}

// Has reports whether id addresses a node of g.
func (g *Graph) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node addressed by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if !g.Has(id) {
		return nil, false
	}
	return g.nodes[id], true
}

// Dependencies returns a copy of id's dependency list in execution order.
func (g *Graph) Dependencies(id NodeID) ([]NodeID, error) {
	n, ok := g.Node(id)
	if !ok {
		return nil, fmt.Errorf("node not found: %d", id)
	}
	return append([]NodeID(nil), n.Dependencies...), nil
}

// Dependents returns the nodes listing id as a dependency, in ascending order.
func (g *Graph) Dependents(id NodeID) ([]NodeID, error) {
	if !g.Has(id) {
		return nil, fmt.Errorf("node not found: %d", id)
	}
	var out []NodeID
	for _, n := range g.nodes[id+1:] {
		for _, dep := range n.Dependencies {
			if dep == id {
				out = append(out, n.ID)
				break
			}
		}
	}
	return out, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns every node in creation order.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// SetRoot marks the node whose completion means the build is done.
func (g *Graph) SetRoot(id NodeID) error {
	if !g.Has(id) {
		return fmt.Errorf("root node not found: %d", id)
	}
	g.root = id
	return nil
}

// Root returns the root handle, or None if SetRoot was never called.
func (g *Graph) Root() NodeID {
	return g.root
}

// String returns the node's label for logs.
func (n *Node) String() string {
	return fmt.Sprintf("#%d %s", n.ID, n.Action.Describe())
}
