package mis

import (
	"context"
	"slices"

	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graph/component"
	"github.com/matzehuels/mwis/pkg/graph/traverse"
)

// componentSolver solves one connected component. It is not safe for
// concurrent use; Solve creates one per component.
type componentSolver struct {
	strategy    Strategy
	maxBranches int
	branches    int
	cyclic      bool
}

// solve handles a connected graph: trees go straight to the dynamic program,
// cyclic graphs are split on a cycle edge.
func (s *componentSolver) solve(ctx context.Context, g *graph.Graph) (float64, []int, error) {
	e, found := traverse.CycleEdge(g, 0)
	if !found {
		return solveTree(g)
	}
	s.cyclic = true

	if s.strategy == StrategyNone {
		return 0, nil, errors.New(errors.ErrCodeUnsupported, "unsupported: cyclic component")
	}
	if s.branches >= s.maxBranches {
		return 0, nil, errors.New(errors.ErrCodeUnsupported,
			"cyclic component exceeds branch budget of %d", s.maxBranches)
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, errors.Wrap(errors.ErrCodeTimeout, err, "solve interrupted")
	}
	s.branches++

	// Any independent set misses at least one endpoint of e.
	var (
		bestWeight float64
		bestSet    []int
	)
	for i, x := range []int{e.From, e.To} {
		w, set, err := s.solveAll(ctx, g.WithoutVertex(x))
		if err != nil {
			return 0, nil, err
		}
		if i == 0 || w > bestWeight {
			bestWeight, bestSet = w, restore(set, x)
		}
	}
	return bestWeight, bestSet, nil
}

// solveAll solves a graph that may have several components.
func (s *componentSolver) solveAll(ctx context.Context, g *graph.Graph) (float64, []int, error) {
	var (
		total float64
		set   []int
	)
	for _, c := range component.Decompose(g) {
		w, local, err := s.solve(ctx, c.Graph)
		if err != nil {
			return 0, nil, err
		}
		total += w
		set = append(set, c.Translate(local)...)
	}
	return total, set, nil
}

// restore maps vertex indices of g.WithoutVertex(removed) back to g.
func restore(set []int, removed int) []int {
	out := slices.Clone(set)
	for i, v := range out {
		if v >= removed {
			out[i] = v + 1
		}
	}
	return out
}
