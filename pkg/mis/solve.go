package mis

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graph/component"
	"github.com/matzehuels/mwis/pkg/observability"
)

// Strategy selects how cyclic components are handled.
type Strategy string

const (
	// StrategyBranch splits cyclic components on a cycle edge until only
	// forests remain. Exact, exponential in the number of independent cycles.
	StrategyBranch Strategy = "branch"
	// StrategyNone rejects cyclic components with an UNSUPPORTED error.
	StrategyNone Strategy = "none"
)

// DefaultMaxBranches bounds the number of branch steps per component.
const DefaultMaxBranches = 4096

// Options configures Solve. The zero value is valid: branch strategy,
// default budget, sequential, no logging.
type Options struct {
	Strategy    Strategy
	MaxBranches int
	// Parallelism is the number of components solved at once; values below
	// two solve sequentially.
	Parallelism int
	Logger      *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if err := errors.ValidateBranchBudget(o.MaxBranches); err != nil {
		return err
	}
	if err := errors.ValidateParallelism(o.Parallelism); err != nil {
		return err
	}
	if o.Strategy == "" {
		o.Strategy = StrategyBranch
	}
	if o.MaxBranches == 0 {
		o.MaxBranches = DefaultMaxBranches
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ComponentResult reports the selection within one connected component.
type ComponentResult struct {
	// Names lists the component's vertices as indices of the input graph.
	Names    []int   `json:"names"`
	Weight   float64 `json:"weight"`
	Vertices []int   `json:"vertices"`
	Cyclic   bool    `json:"cyclic,omitempty"`
	Branches int     `json:"branches,omitempty"`
}

// Result is a maximum-weight independent set of a whole graph.
type Result struct {
	Weight float64 `json:"weight"`
	// Vertices is sorted ascending.
	Vertices   []int             `json:"vertices"`
	Components []ComponentResult `json:"components"`
}

// Solve returns a maximum-weight independent set of g.
//
// Components are solved independently and their results concatenated in
// component order. The first component error fails the whole call; no
// partial result is returned. ctx is checked before each component and
// between branch steps, and cancellation is reported as a TIMEOUT error.
func Solve(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, g.VertexCount(), g.EdgeCount())

	comps := component.Decompose(g)
	results := make([]ComponentResult, len(comps))
	opts.Logger.Debug("decomposed graph",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"components", len(comps))

	solveOne := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeTimeout, err, "solve interrupted before component %d of %d", i, len(comps))
		}
		c := comps[i]
		began := time.Now()
		s := &componentSolver{strategy: opts.Strategy, maxBranches: opts.MaxBranches}
		w, local, err := s.solve(ctx, c.Graph)
		hooks.OnComponent(ctx, i, len(c.Names), s.cyclic, time.Since(began), err)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		vertices := c.Translate(local)
		slices.Sort(vertices)
		results[i] = ComponentResult{
			Names:    c.Names,
			Weight:   w,
			Vertices: vertices,
			Cyclic:   s.cyclic,
			Branches: s.branches,
		}
		if s.cyclic {
			opts.Logger.Debug("solved cyclic component",
				"component", i,
				"size", len(c.Names),
				"branches", s.branches,
				"weight", w)
		}
		return nil
	}

	var err error
	if opts.Parallelism > 1 && len(comps) > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(opts.Parallelism)
		for i := range comps {
			eg.Go(func() error { return solveOne(egCtx, i) })
		}
		err = eg.Wait()
	} else {
		for i := range comps {
			if err = solveOne(ctx, i); err != nil {
				break
			}
		}
	}
	if err != nil {
		hooks.OnSolveComplete(ctx, len(comps), 0, time.Since(start), err)
		return nil, err
	}

	res := &Result{Vertices: []int{}, Components: results}
	for _, r := range results {
		res.Weight += r.Weight
		res.Vertices = append(res.Vertices, r.Vertices...)
	}
	slices.Sort(res.Vertices)

	hooks.OnSolveComplete(ctx, len(comps), res.Weight, time.Since(start), nil)
	opts.Logger.Info("solved",
		"components", len(comps),
		"selected", len(res.Vertices),
		"weight", res.Weight,
		"duration", time.Since(start))
	return res, nil
}

// IsIndependent reports whether set contains valid, distinct vertices of g
// with no edge between any two of them.
func IsIndependent(g *graph.Graph, set []int) bool {
	in := make([]bool, g.VertexCount())
	for _, v := range set {
		if v < 0 || v >= len(in) || in[v] {
			return false
		}
		in[v] = true
	}
	for _, e := range g.Edges() {
		if in[e.From] && in[e.To] {
			return false
		}
	}
	return true
}

// TotalWeight sums the weights of the vertices in set.
func TotalWeight(g *graph.Graph, set []int) float64 {
	var sum float64
	for _, v := range set {
		sum += g.Weight(v)
	}
	return sum
}
