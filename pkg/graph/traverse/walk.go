package traverse

import "github.com/matzehuels/mwis/pkg/graph"

// Visitor is called once per visited vertex with its weight.
type Visitor func(v int, weight float64)

// Strategy is a pluggable traversal order.
type Strategy interface {
	Traverse(g *graph.Graph, start int, visit Visitor)
}

// BFS visits vertices in breadth-first order.
type BFS struct{}

// Traverse implements [Strategy] using [BreadthFirst].
func (BFS) Traverse(g *graph.Graph, start int, visit Visitor) { BreadthFirst(g, start, visit) }

// DFS visits vertices in depth-first preorder.
type DFS struct{}

// Traverse implements [Strategy] using [DepthFirst] with no exit hook.
func (DFS) Traverse(g *graph.Graph, start int, visit Visitor) { DepthFirst(g, start, visit, nil) }

var (
	_ Strategy = BFS{}
	_ Strategy = DFS{}
)

// BreadthFirst visits every vertex reachable from start through undirected
// neighbour links, each exactly once, in breadth-first order.
func BreadthFirst(g *graph.Graph, start int, visit Visitor) {
	n := g.VertexCount()
	if start < 0 || start >= n {
		return
	}
	seen := make([]bool, n)
	seen[start] = true
	queue := []int{start}

	for qi := 0; qi < len(queue); qi++ {
		v := queue[qi]
		if visit != nil {
			visit(v, g.Weight(v))
		}
		for _, nb := range g.Neighbors(v) {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
}

// DepthFirst walks the undirected component of start depth-first. enter is
// called when a vertex is first reached, exit once all vertices discovered
// from it are finished. Either hook may be nil. The walk uses an explicit
// stack, so deep paths do not grow the goroutine stack.
func DepthFirst(g *graph.Graph, start int, enter, exit Visitor) {
	n := g.VertexCount()
	if start < 0 || start >= n {
		return
	}

	type frame struct {
		v    int
		next int // index into Neighbors(v) of the next neighbour to try
		nbrs []int
	}

	seen := make([]bool, n)
	seen[start] = true
	if enter != nil {
		enter(start, g.Weight(start))
	}
	stack := []frame{{v: start, nbrs: g.Neighbors(start)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.nbrs) {
			if exit != nil {
				exit(top.v, g.Weight(top.v))
			}
			stack = stack[:len(stack)-1]
			continue
		}
		nb := top.nbrs[top.next]
		top.next++
		if seen[nb] {
			continue
		}
		seen[nb] = true
		if enter != nil {
			enter(nb, g.Weight(nb))
		}
		stack = append(stack, frame{v: nb, nbrs: g.Neighbors(nb)})
	}
}

// Component returns the vertices reachable from v, v first, in stack-based
// discovery order. Returns nil if v is out of range.
func Component(g *graph.Graph, v int) []int {
	n := g.VertexCount()
	if v < 0 || v >= n {
		return nil
	}
	seen := make([]bool, n)
	seen[v] = true
	out := []int{v}
	stack := []int{v}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range g.Neighbors(cur) {
			if !seen[nb] {
				seen[nb] = true
				out = append(out, nb)
				stack = append(stack, nb)
			}
		}
	}
	return out
}

// Leaves returns the vertices in v's component that have no followings,
// in discovery order.
func Leaves(g *graph.Graph, v int) []int {
	var out []int
	for _, u := range Component(g, v) {
		if len(g.Following(u)) == 0 {
			out = append(out, u)
		}
	}
	return out
}
