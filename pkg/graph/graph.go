package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrVertexOutOfRange is returned by [Graph.AddEdge] when an endpoint is
	// not a valid vertex index.
	ErrVertexOutOfRange = errors.New("vertex index out of range")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same vertex. Self-loops would break the follower/following pairing.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the two vertices
	// are already connected, in either direction.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrNonFiniteWeight is returned by [WithEdges] when a weight is NaN or
	// infinite.
	ErrNonFiniteWeight = errors.New("non-finite weight")
)

// Direction tells which end of a logical edge a half-edge record sits on.
type Direction int8

const (
	// Forward marks the half-edge stored on the source vertex.
	Forward Direction = iota
	// Backward marks the mirror half-edge stored on the target vertex.
	Backward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// HalfEdge is one directed record of an edge, stored on the vertex it leaves.
type HalfEdge struct {
	Dir    Direction
	Target int
}

// Edge is a logical edge, read as From → To.
type Edge struct {
	From int
	To   int
}

// Graph is a weighted graph whose edges are stored as paired half-edges.
//
// The zero value is an empty graph with no vertices. Use [New] to create a
// graph with vertices.
type Graph struct {
	weights []float64
	edges   [][]HalfEdge
}

// New creates a graph with one isolated vertex per weight. The weights slice
// is copied. An empty or nil slice yields a valid zero-vertex graph.
func New(weights []float64) *Graph {
	return &Graph{
		weights: slices.Clone(weights),
		edges:   make([][]HalfEdge, len(weights)),
	}
}

// WithEdges creates a graph and adds every edge in order.
// It rejects NaN and infinite weights, then stops at the first invalid edge
// and returns its error.
func WithEdges(weights []float64, edges []Edge) (*Graph, error) {
	for v, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: vertex %d has weight %v", ErrNonFiniteWeight, v, w)
		}
	}
	g := New(weights)
	for i, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

// AddEdge inserts the forward half-edge from→to and the backward half-edge
// to→from. It returns an error wrapping [ErrVertexOutOfRange], [ErrSelfLoop],
// or [ErrDuplicateEdge] and leaves the graph unchanged in that case.
func (g *Graph) AddEdge(from, to int) error {
	if !g.valid(from) {
		return fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, from, len(g.weights))
	}
	if !g.valid(to) {
		return fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, to, len(g.weights))
	}
	if from == to {
		return fmt.Errorf("%w: vertex %d", ErrSelfLoop, from)
	}
	if g.HasEdge(from, to) {
		return fmt.Errorf("%w: %d-%d", ErrDuplicateEdge, from, to)
	}
	g.edges[from] = append(g.edges[from], HalfEdge{Dir: Forward, Target: to})
	g.edges[to] = append(g.edges[to], HalfEdge{Dir: Backward, Target: from})
	return nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.weights) }

// EdgeCount returns the number of logical edges (half-edge pairs).
func (g *Graph) EdgeCount() int {
	n := 0
	for _, list := range g.edges {
		n += len(list)
	}
	return n / 2
}

// Weight returns the weight of v, or 0 if v is out of range.
func (g *Graph) Weight(v int) float64 {
	if !g.valid(v) {
		return 0
	}
	return g.weights[v]
}

// Weights returns a copy of all vertex weights in index order.
func (g *Graph) Weights() []float64 { return slices.Clone(g.weights) }

// HalfEdges returns the half-edge records stored on v in insertion order.
// The returned slice must not be modified.
func (g *Graph) HalfEdges(v int) []HalfEdge {
	if !g.valid(v) {
		return nil
	}
	return g.edges[v]
}

// Following returns the vertices v points at (its children), in insertion
// order. Returns nil if v has none or is out of range.
func (g *Graph) Following(v int) []int { return g.directed(v, Forward) }

// Followers returns the vertices pointing at v (its parents), in insertion
// order. Returns nil if v has none or is out of range.
func (g *Graph) Followers(v int) []int { return g.directed(v, Backward) }

// Neighbors returns every vertex adjacent to v regardless of direction, in
// half-edge insertion order.
func (g *Graph) Neighbors(v int) []int {
	if !g.valid(v) {
		return nil
	}
	out := make([]int, len(g.edges[v]))
	for i, he := range g.edges[v] {
		out[i] = he.Target
	}
	return out
}

// Degree returns the undirected degree of v.
func (g *Graph) Degree(v int) int {
	if !g.valid(v) {
		return 0
	}
	return len(g.edges[v])
}

// HasEdge reports whether u and v are connected in either direction.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.valid(u) || !g.valid(v) {
		return false
	}
	return slices.ContainsFunc(g.edges[u], func(he HalfEdge) bool { return he.Target == v })
}

// Followerless returns the vertices with no followers (root candidates),
// in ascending index order.
func (g *Graph) Followerless() []int { return g.ends(Backward) }

// Followless returns the vertices that follow nobody (leaf candidates),
// in ascending index order.
func (g *Graph) Followless() []int { return g.ends(Forward) }

// Edges returns every logical edge as From → To, ordered by source vertex
// and then by insertion order on that vertex.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for v, list := range g.edges {
		for _, he := range list {
			if he.Dir == Forward {
				out = append(out, Edge{From: v, To: he.Target})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	edges := make([][]HalfEdge, len(g.edges))
	for v, list := range g.edges {
		edges[v] = slices.Clone(list)
	}
	return &Graph{weights: slices.Clone(g.weights), edges: edges}
}

// WithoutEdge returns a copy of the graph with the edge between from and to
// removed. Both half-edges are dropped. The edge is looked up as from → to
// first and as to → from second; if neither exists the copy is identical to
// the receiver.
func (g *Graph) WithoutEdge(from, to int) *Graph {
	if !g.valid(from) || !g.valid(to) {
		return g.Clone()
	}
	if !g.hasDirected(from, to) && g.hasDirected(to, from) {
		from, to = to, from
	}

	edges := make([][]HalfEdge, len(g.edges))
	for v, list := range g.edges {
		edges[v] = slices.Clip(list)
	}
	edges[from] = slices.DeleteFunc(slices.Clone(g.edges[from]), func(he HalfEdge) bool {
		return he.Dir == Forward && he.Target == to
	})
	edges[to] = slices.DeleteFunc(slices.Clone(g.edges[to]), func(he HalfEdge) bool {
		return he.Dir == Backward && he.Target == from
	})
	return &Graph{weights: slices.Clip(g.weights), edges: edges}
}

// WithoutVertex returns a copy of the graph with v and all its incident
// edges removed. Vertices above v are renumbered down by one. If v is out of
// range the copy is identical to the receiver.
func (g *Graph) WithoutVertex(v int) *Graph {
	if !g.valid(v) {
		return g.Clone()
	}

	n := len(g.weights) - 1
	weights := make([]float64, 0, n)
	weights = append(weights, g.weights[:v]...)
	weights = append(weights, g.weights[v+1:]...)

	edges := make([][]HalfEdge, 0, n)
	for u, list := range g.edges {
		if u == v {
			continue
		}
		kept := make([]HalfEdge, 0, len(list))
		for _, he := range list {
			switch {
			case he.Target == v:
				continue
			case he.Target > v:
				he.Target--
			}
			kept = append(kept, he)
		}
		edges = append(edges, kept)
	}
	return &Graph{weights: weights, edges: edges}
}

func (g *Graph) valid(v int) bool { return v >= 0 && v < len(g.weights) }

func (g *Graph) directed(v int, dir Direction) []int {
	if !g.valid(v) {
		return nil
	}
	var out []int
	for _, he := range g.edges[v] {
		if he.Dir == dir {
			out = append(out, he.Target)
		}
	}
	return out
}

func (g *Graph) hasDirected(from, to int) bool {
	return slices.Contains(g.edges[from], HalfEdge{Dir: Forward, Target: to})
}

func (g *Graph) ends(dir Direction) []int {
	var out []int
	for v, list := range g.edges {
		if !slices.ContainsFunc(list, func(he HalfEdge) bool { return he.Dir == dir }) {
			out = append(out, v)
		}
	}
	return out
}
