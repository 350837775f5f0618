package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graph/traverse"
	"github.com/matzehuels/mwis/pkg/mis"
	"github.com/matzehuels/mwis/pkg/pipeline"
)

// demoStarts are the vertices the demo traverses from.
var demoStarts = []int{1, 2, 5}

// demoGraph is a small sample: two isolated vertices, a triangle, and a
// path into a four-cycle with a pendant vertex.
func demoGraph() (*graph.Graph, error) {
	weights := []float64{2, 1, 3, 2, 1, 5, 2, 1, 1, 1, 1, 3, 1}
	edges := []graph.Edge{
		{From: 2, To: 3}, {From: 3, To: 4}, {From: 4, To: 2},
		{From: 5, To: 6}, {From: 6, To: 7}, {From: 7, To: 8},
		{From: 8, To: 9}, {From: 9, To: 10}, {From: 10, To: 11},
		{From: 11, To: 8}, {From: 12, To: 7},
	}
	return graph.WithEdges(weights, edges)
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Traverse and solve a built-in sample graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.solverDefaults(&opts)
			return c.runDemo(cmd.Context(), cmd.OutOrStdout(), opts.SolverOptions())
		},
	}
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "cyclic component strategy: branch (default), none")

	return cmd
}

func (c *CLI) runDemo(ctx context.Context, w io.Writer, opts mis.Options) error {
	g, err := demoGraph()
	if err != nil {
		return err
	}

	for _, start := range demoStarts {
		printTitle(w, fmt.Sprintf("BFS traversal from %d:", start))
		traverse.BreadthFirst(g, start, func(v int, weight float64) {
			printDetail(w, "%d (w=%g)", v, weight)
		})
	}

	res, err := mis.Solve(ctx, g, opts)
	if err != nil {
		printWarning(w, "solve failed: %v", err)
		return err
	}

	printTitle(w, "Maximum-weight independent set:")
	printKeyValue(w, "weight", formatWeight(res.Weight))
	printKeyValue(w, "vertices", formatVertices(res.Vertices, nil))
	printComponents(w, res.Components)
	return nil
}
