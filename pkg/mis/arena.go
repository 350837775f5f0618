package mis

// handle addresses a node in an arena.
type handle int32

// empty is the handle of the empty set, present in every arena.
const empty handle = 0

// node is one immutable piece of a solution tree. A node with vertex < 0
// contributes no vertex of its own and only groups its children.
type node struct {
	vertex   int
	children []handle
}

// arena owns the solution trees of one component. Nodes are append-only, so
// any number of parents may point at the same subtree.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	nodes := make([]node, 1, capacity+1)
	nodes[0] = node{vertex: -1}
	return &arena{nodes: nodes}
}

// add stores a node selecting vertex (or nothing, for vertex < 0) on top of
// the given subtrees. Empty children are dropped; a vertex-less node with a
// single remaining child is that child.
func (a *arena) add(vertex int, children ...handle) handle {
	var kept []handle
	for _, c := range children {
		if c != empty {
			kept = append(kept, c)
		}
	}
	if vertex < 0 {
		switch len(kept) {
		case 0:
			return empty
		case 1:
			return kept[0]
		}
	}
	a.nodes = append(a.nodes, node{vertex: vertex, children: kept})
	return handle(len(a.nodes) - 1)
}

// flatten collects every vertex reachable from h in pre-order.
func (a *arena) flatten(h handle) []int {
	var out []int
	stack := []handle{h}
	for len(stack) > 0 {
		n := a.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.vertex >= 0 {
			out = append(out, n.vertex)
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return out
}

// len reports the number of stored nodes, the empty node included.
func (a *arena) len() int { return len(a.nodes) }
