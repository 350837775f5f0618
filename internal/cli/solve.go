package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mwis/pkg/mis"
	"github.com/matzehuels/mwis/pkg/pipeline"
)

// solveOutput is the --json form of a solve result.
type solveOutput struct {
	Weight     float64               `json:"weight"`
	Vertices   []int                 `json:"vertices"`
	Labels     []string              `json:"labels,omitempty"`
	Components []mis.ComponentResult `json:"components"`
	Cached     bool                  `json:"cached"`
}

// addSolverFlags registers the flags shared by solve and render.
func addSolverFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "cyclic component strategy: branch (default), none")
	cmd.Flags().IntVar(&opts.MaxBranches, "max-branches", 0, "branch budget per cyclic component (default 4096)")
	cmd.Flags().IntVar(&opts.Parallelism, "parallel", 0, "components solved concurrently")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		noCache bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "solve [graph.json|graph.toml]",
		Short: "Select a maximum-weight independent set",
		Long: `Select a maximum-weight independent set of the graph in the given file.

The file lists vertex weights and undirected edges, either by index or by
vertex label. Solutions are cached; use --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.solverDefaults(&opts)
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts, noCache, asJSON)
		},
	}

	addSolverFlags(cmd, &opts)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, stdout, stderr io.Writer, input string, opts pipeline.Options, noCache, asJSON bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, stderr, fmt.Sprintf("Solving %s...", input))
	spinner.Start()

	res, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()
	prog.done("solved graph", "weight", res.Solution.Weight, "cached", res.CacheInfo.SolveHit)

	sol := res.Solution
	var labels []string
	if res.Document.Named() {
		labels = res.Document.LabelsOf(sol.Vertices)
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Weight:     sol.Weight,
			Vertices:   sol.Vertices,
			Labels:     labels,
			Components: sol.Components,
			Cached:     res.CacheInfo.SolveHit,
		})
	}

	printSuccess(stdout, "Selected %d of %d vertices", len(sol.Vertices), res.Stats.Vertices)
	printKeyValue(stdout, "weight", formatWeight(sol.Weight))
	printKeyValue(stdout, "vertices", formatVertices(sol.Vertices, labels))
	printComponents(stdout, sol.Components)
	printStats(stdout, res.Stats.Vertices, res.Stats.Edges, res.Stats.Components, res.CacheInfo.SolveHit)
	return nil
}

// printComponents lists components with more than one vertex.
func printComponents(w io.Writer, comps []mis.ComponentResult) {
	for i, cr := range comps {
		if len(cr.Names) < 2 {
			continue
		}
		kind := "tree"
		if cr.Cyclic {
			kind = fmt.Sprintf("cyclic, %d branches", cr.Branches)
		}
		printDetail(w, "component %d: %d vertices (%s), weight %g", i, len(cr.Names), kind, cr.Weight)
	}
}
