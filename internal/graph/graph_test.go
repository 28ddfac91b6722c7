package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/loki/internal/testutil"
)

func fake(name string) *testutil.FakeAction {
	return &testutil.FakeAction{Name: name}
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, None, g.Root())
}

func TestAdd(t *testing.T) {
	g := New()

	a, err := g.Add(fake("a"))
	require.NoError(t, err)
	b, err := g.Add(fake("b"), a)
	require.NoError(t, err)

	assert.Equal(t, NodeID(0), a)
	assert.Equal(t, NodeID(1), b)
	assert.Equal(t, 2, g.Len())

	deps, err := g.Dependencies(b)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a}, deps)
}

func TestAdd_Errors(t *testing.T) {
	g := New()

	_, err := g.Add(nil)
	assert.ErrorContains(t, err, "action must not be nil")

	_, err = g.Add(fake("orphan"), NodeID(3))
	assert.ErrorContains(t, err, "unknown dependency 3")

	// A node cannot depend on itself: its own handle does not exist yet.
	_, err = g.Add(fake("self"), NodeID(0))
	assert.ErrorContains(t, err, "unknown dependency 0")
	assert.Equal(t, 0, g.Len())

	assert.Panics(t, func() { g.MustAdd(fake("bad"), None) })
}

func TestAdd_CopiesDependencyList(t *testing.T) {
	g := New()
	a := g.MustAdd(fake("a"))
	deps := []NodeID{a}
	b := g.MustAdd(fake("b"), deps...)
	deps[0] = NodeID(42)

	got, err := g.Dependencies(b)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a}, got)
}

func TestSharedDependency(t *testing.T) {
	g := New()
	dir := g.MustAdd(fake("mkdir"))
	one := g.MustAdd(fake("one"), dir)
	two := g.MustAdd(fake("two"), dir)

	n1, _ := g.Node(one)
	n2, _ := g.Node(two)
	assert.Equal(t, n1.Dependencies[0], n2.Dependencies[0])

	dependents, err := g.Dependents(dir)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{one, two}, dependents)
}

func TestNode_NotFound(t *testing.T) {
	g := New()
	n, ok := g.Node(NodeID(0))
	assert.False(t, ok)
	assert.Nil(t, n)

	_, err := g.Dependencies(NodeID(7))
	assert.ErrorContains(t, err, "node not found")
	_, err = g.Dependents(None)
	assert.ErrorContains(t, err, "node not found")
}

func TestSetRoot(t *testing.T) {
	g := New()
	assert.Error(t, g.SetRoot(NodeID(0)))

	a := g.MustAdd(fake("a"))
	require.NoError(t, g.SetRoot(a))
	assert.Equal(t, a, g.Root())
}

func TestNodes_CreationOrder(t *testing.T) {
	g := New()
	g.MustAdd(fake("a"))
	g.MustAdd(fake("b"))

	nodes := g.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "#0 a", nodes[0].String())
	assert.Equal(t, "#1 b", nodes[1].String())
}
