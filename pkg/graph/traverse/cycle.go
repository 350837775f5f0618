package traverse

import (
	"errors"
	"fmt"

	"github.com/matzehuels/mwis/pkg/graph"
)

// ErrNotATree is returned by [Orient] when the root's component has a cycle.
var ErrNotATree = errors.New("component is not a tree")

// CycleEdge looks for a cycle in the component containing start. It returns
// an edge lying on some cycle and true, or the zero edge and false if the
// component is a tree.
func CycleEdge(g *graph.Graph, start int) (graph.Edge, bool) {
	n := g.VertexCount()
	if start < 0 || start >= n {
		return graph.Edge{}, false
	}
	from := make([]int, n)
	for i := range from {
		from[i] = -1
	}
	seen := make([]bool, n)
	return cycleEdgeFrom(g, start, seen, from)
}

// FindCycleEdge runs [CycleEdge] over every component, lowest vertex first,
// and returns the first witness found.
func FindCycleEdge(g *graph.Graph) (graph.Edge, bool) {
	n := g.VertexCount()
	seen := make([]bool, n)
	from := make([]int, n)
	for i := range from {
		from[i] = -1
	}
	for v := range n {
		if seen[v] {
			continue
		}
		if e, ok := cycleEdgeFrom(g, v, seen, from); ok {
			return e, true
		}
	}
	return graph.Edge{}, false
}

// cycleEdgeFrom walks start's component. from[v] records the vertex v was
// first reached from; a visited neighbour other than from[cur] closes a cycle.
func cycleEdgeFrom(g *graph.Graph, start int, seen []bool, from []int) (graph.Edge, bool) {
	seen[start] = true
	stack := []int{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range g.Neighbors(cur) {
			if nb == from[cur] {
				continue
			}
			if seen[nb] {
				return graph.Edge{From: cur, To: nb}, true
			}
			seen[nb] = true
			from[nb] = cur
			stack = append(stack, nb)
		}
	}
	return graph.Edge{}, false
}

// Orient returns a copy of g in which every edge of root's component points
// away from root, so root is the only vertex of that component without
// followers and each vertex's followings are its children. Edges outside the
// component are copied unchanged. Orient fails with [ErrNotATree] if the
// component contains a cycle.
func Orient(g *graph.Graph, root int) (*graph.Graph, error) {
	n := g.VertexCount()
	if root < 0 || root >= n {
		return nil, fmt.Errorf("%w: root %d", graph.ErrVertexOutOfRange, root)
	}

	out := graph.New(g.Weights())
	inTree := make([]bool, n)
	inTree[root] = true
	queue := []int{root}

	for qi := 0; qi < len(queue); qi++ {
		v := queue[qi]
		for _, nb := range g.Neighbors(v) {
			if out.HasEdge(v, nb) {
				continue // tree edge already added from nb's side
			}
			if inTree[nb] {
				return nil, fmt.Errorf("%w: edge %d-%d closes a cycle", ErrNotATree, v, nb)
			}
			inTree[nb] = true
			if err := out.AddEdge(v, nb); err != nil {
				return nil, err
			}
			queue = append(queue, nb)
		}
	}

	for _, e := range g.Edges() {
		if inTree[e.From] {
			continue
		}
		if err := out.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return out, nil
}
