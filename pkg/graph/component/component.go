// Package component splits a [graph.Graph] into its connected components.
//
// Each component is extracted as an independent graph whose vertices are
// renumbered 0..k-1 in discovery order, together with a name mapping back to
// the original vertex indices:
//
//	for _, c := range component.Decompose(g) {
//	    fmt.Println(c.Graph.VertexCount(), "vertices, originally", c.Names)
//	}
//
// Components are returned ordered by their smallest original vertex, and
// every original edge lands in exactly one component with its direction
// preserved.
package component

import (
	"github.com/matzehuels/mwis/pkg/graph"
)

// Component is one connected component extracted from a larger graph.
type Component struct {
	// Graph holds the component's vertices renumbered 0..len(Names)-1.
	Graph *graph.Graph
	// Names maps a local vertex index to its index in the source graph.
	Names []int
}

// Original returns the source-graph index of local vertex v.
func (c Component) Original(v int) int { return c.Names[v] }

// Translate maps local vertex indices to source-graph indices.
func (c Component) Translate(local []int) []int {
	out := make([]int, len(local))
	for i, v := range local {
		out[i] = c.Names[v]
	}
	return out
}

// Decompose returns one Component per connected component of g, using the
// undirected view of its edges.
//
// The sweep starts a stack-based flood fill at every vertex not yet assigned
// to a component, in ascending index order, and numbers vertices locally in
// the order they are discovered. An empty graph yields no components.
func Decompose(g *graph.Graph) []Component {
	n := g.VertexCount()
	compOf := make([]int, n)
	local := make([]int, n)
	for i := range compOf {
		compOf[i] = -1
	}

	var names [][]int
	for start := range n {
		if compOf[start] >= 0 {
			continue
		}
		id := len(names)
		members := []int{start}
		compOf[start] = id
		local[start] = 0
		stack := []int{start}

		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range g.Neighbors(v) {
				if compOf[nb] >= 0 {
					continue
				}
				compOf[nb] = id
				local[nb] = len(members)
				members = append(members, nb)
				stack = append(stack, nb)
			}
		}
		names = append(names, members)
	}

	comps := make([]Component, len(names))
	for id, members := range names {
		weights := make([]float64, len(members))
		for i, v := range members {
			weights[i] = g.Weight(v)
		}
		comps[id] = Component{Graph: graph.New(weights), Names: members}
	}

	for _, e := range g.Edges() {
		c := comps[compOf[e.From]]
		// Endpoints share a component and the source graph has no duplicates,
		// so AddEdge cannot fail here.
		_ = c.Graph.AddEdge(local[e.From], local[e.To])
	}
	return comps
}
