package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mwis/pkg/api"
	"github.com/matzehuels/mwis/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Endpoints:
  GET  /healthz     liveness and version
  POST /v1/solve    solve a graph document, returns JSON
  POST /v1/render   solve and draw a graph document (?format=svg|png|dot)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var defaults pipeline.Options
	c.solverDefaults(&defaults)

	srv := api.NewServer(runner, c.Logger, api.Options{
		Defaults: defaults,
		Timeout:  c.Config.Server.Timeout.Duration,
	})
	return srv.ListenAndServe(ctx, addr)
}
