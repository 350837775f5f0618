package mis

import (
	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graph/traverse"
)

// solveTree returns the maximum-weight independent set of a connected
// acyclic graph. Edge directions in g are ignored: the tree is re-rooted at
// vertex 0 before the bottom-up pass.
func solveTree(g *graph.Graph) (float64, []int, error) {
	n := g.VertexCount()
	if n == 0 {
		return 0, nil, nil
	}

	t, err := traverse.Orient(g, 0)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrCodeInternal, err, "malformed component")
	}
	roots := t.Followerless()
	if len(roots) != 1 {
		return 0, nil, errors.New(errors.ErrCodeInternal, "malformed component: %d roots", len(roots))
	}

	var (
		ar = newArena(2 * n)
		// a[v] is the best weight of v's subtree, u[v] a set achieving it.
		a = make([]float64, n)
		u = make([]handle, n)
		// aP[v] and uP[v] are the same with v itself excluded.
		aP = make([]float64, n)
		uP = make([]handle, n)
	)

	pending := make([]int, n)
	order := make([]int, 0, n)
	for v := range n {
		pending[v] = len(t.Following(v))
		if pending[v] == 0 {
			order = append(order, v)
		}
	}

	for i := 0; i < len(order); i++ {
		v := order[i]
		children := t.Following(v)

		if len(children) == 0 {
			if w := t.Weight(v); w >= 0 {
				a[v], u[v] = w, ar.add(v)
			}
		} else {
			without, with := 0.0, t.Weight(v)
			best := make([]handle, len(children))
			excl := make([]handle, len(children))
			for j, c := range children {
				without += a[c]
				with += aP[c]
				best[j], excl[j] = u[c], uP[c]
			}
			aP[v], uP[v] = without, ar.add(-1, best...)
			if without >= with {
				a[v], u[v] = without, uP[v]
			} else {
				a[v], u[v] = with, ar.add(v, excl...)
			}
		}

		for _, p := range t.Followers(v) {
			pending[p]--
			if pending[p] == 0 {
				order = append(order, p)
			}
		}
	}

	if len(order) != n {
		return 0, nil, errors.New(errors.ErrCodeInternal,
			"malformed component: ordered %d of %d vertices", len(order), n)
	}

	root := roots[0]
	return a[root], ar.flatten(u[root]), nil
}
