package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mwis/pkg/pipeline"
	"github.com/matzehuels/mwis/pkg/render/nodelink"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|graph.toml]",
		Short: "Draw the graph with its independent set highlighted",
		Long: `Solve the graph, then draw it with Graphviz.

Selected vertices are filled. The output format follows --format, or the
extension of --output (.svg, .png, .dot), and defaults to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.solverDefaults(&opts)
			format, path, err := renderTarget(args[0], output, opts.Format)
			if err != nil {
				return err
			}
			opts.Format = format
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], path, opts, noCache)
		},
	}

	addSolverFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.Weights, "weights", false, "show vertex weights in labels")
	cmd.Flags().StringVar(&opts.Layout, "layout", pipeline.DefaultLayout, "graphviz layout engine: "+strings.Join(nodelink.Layouts, ", "))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// renderTarget resolves the output format and path from the flags.
func renderTarget(input, output, format string) (string, string, error) {
	if format == "" && output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	if format == "" {
		format = nodelink.FormatSVG
	}
	switch format {
	case nodelink.FormatSVG, nodelink.FormatPNG, nodelink.FormatDOT:
	default:
		return "", "", fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", format)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	return format, output, nil
}

func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input, output string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, stderr, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	res, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("rendered graph", "format", opts.Format, "cached", res.CacheInfo.RenderHit)

	printSuccess(stdout, "Rendered %s (weight %s)", opts.Format, formatWeight(res.Solution.Weight))
	printFile(stdout, output)
	printStats(stdout, res.Stats.Vertices, res.Stats.Edges, res.Stats.Components, res.CacheInfo.RenderHit)
	return nil
}
