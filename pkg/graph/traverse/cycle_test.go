package traverse_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graph/traverse"
)

// onCycle reports whether e's endpoints stay connected once e is removed,
// i.e. whether they are joined by two distinct simple paths in g.
func onCycle(g *graph.Graph, e graph.Edge) bool {
	h := g.WithoutEdge(e.From, e.To)
	return slices.Contains(traverse.Component(h, e.From), e.To)
}

func TestCycleEdgeTree(t *testing.T) {
	g := sample(t)
	for v := range g.VertexCount() {
		_, ok := traverse.CycleEdge(g, v)
		assert.False(t, ok, "tree component of %d reported a cycle", v)
	}
	_, ok := traverse.FindCycleEdge(g)
	assert.False(t, ok)
}

func TestCycleEdgeSquare(t *testing.T) {
	g, err := graph.WithEdges([]float64{1, 1, 1, 1}, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}})
	require.NoError(t, err)

	e, ok := traverse.CycleEdge(g, 0)
	require.True(t, ok)
	assert.True(t, g.HasEdge(e.From, e.To))
	assert.True(t, onCycle(g, e))
}

func TestCycleEdgeOnlyInOtherComponent(t *testing.T) {
	// 0 - 1 is a tree; 2 - 3 - 4 - 2 is a triangle
	g, err := graph.WithEdges(
		[]float64{1, 1, 1, 1, 1},
		[]graph.Edge{{From: 0, To: 1}, {From: 2, To: 3}, {From: 3, To: 4}, {From: 4, To: 2}},
	)
	require.NoError(t, err)

	_, ok := traverse.CycleEdge(g, 0)
	assert.False(t, ok)

	e, ok := traverse.CycleEdge(g, 3)
	require.True(t, ok)
	assert.True(t, onCycle(g, e))

	e, ok = traverse.FindCycleEdge(g)
	require.True(t, ok)
	assert.True(t, onCycle(g, e))
}

func TestCycleEdgeTriangleWithTail(t *testing.T) {
	// The witness must avoid the bridge 0-1.
	g, err := graph.WithEdges(
		[]float64{1, 1, 1, 1},
		[]graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 1}},
	)
	require.NoError(t, err)

	for start := range 4 {
		e, ok := traverse.CycleEdge(g, start)
		require.True(t, ok)
		assert.True(t, onCycle(g, e), "start %d gave bridge %v", start, e)
	}
}

func TestCycleEdgeRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for range 200 {
		n := 2 + r.IntN(13)
		g := randomForest(r, n)

		_, ok := traverse.FindCycleEdge(g)
		require.False(t, ok, "forest reported a cycle: %v", g.Edges())

		// Close a cycle by joining two vertices of one component.
		u := r.IntN(n)
		comp := traverse.Component(g, u)
		v := -1
		for _, c := range comp {
			if c != u && !g.HasEdge(u, c) {
				v = c
				break
			}
		}
		if v < 0 {
			continue
		}
		require.NoError(t, g.AddEdge(u, v))

		e, ok := traverse.FindCycleEdge(g)
		require.True(t, ok, "missed cycle: %v", g.Edges())
		assert.True(t, onCycle(g, e), "witness %v is a bridge in %v", e, g.Edges())
	}
}

func TestOrient(t *testing.T) {
	// Mixed directions: 1 → 0, 1 → 2, 3 → 2
	g, err := graph.WithEdges([]float64{1, 2, 3, 4}, []graph.Edge{{From: 1, To: 0}, {From: 1, To: 2}, {From: 3, To: 2}})
	require.NoError(t, err)
	require.Len(t, g.Followerless(), 2)

	o, err := traverse.Orient(g, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, o.Followerless())
	assert.Equal(t, []int{1}, o.Following(0))
	assert.Equal(t, []int{2}, o.Following(1))
	assert.Equal(t, []int{3}, o.Following(2))
	assert.Equal(t, g.Weights(), o.Weights())
	assert.Equal(t, g.EdgeCount(), o.EdgeCount())
}

func TestOrientKeepsOtherComponents(t *testing.T) {
	g, err := graph.WithEdges([]float64{1, 1, 1, 1}, []graph.Edge{{From: 1, To: 0}, {From: 3, To: 2}})
	require.NoError(t, err)

	o, err := traverse.Orient(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, o.Following(0))
	assert.Equal(t, []int{2}, o.Following(3))
}

func TestOrientCycle(t *testing.T) {
	g, err := graph.WithEdges([]float64{1, 1, 1}, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0}})
	require.NoError(t, err)

	_, err = traverse.Orient(g, 0)
	assert.ErrorIs(t, err, traverse.ErrNotATree)
}

func TestOrientBadRoot(t *testing.T) {
	_, err := traverse.Orient(graph.New([]float64{1}), 3)
	assert.ErrorIs(t, err, graph.ErrVertexOutOfRange)
}
