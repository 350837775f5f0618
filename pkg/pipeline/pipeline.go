// Package pipeline runs the load → solve → render sequence shared by the CLI
// and the HTTP API.
//
// # Stages
//
//  1. Load: read a graph document from disk (JSON or TOML)
//  2. Solve: compute a maximum-weight independent set, with caching
//  3. Render: draw the graph with the selection highlighted, with caching
//
// Each stage can be run on its own through a [Runner] or all together with
// [Runner.Execute]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "graph.json", pipeline.Options{Format: "svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Solution.Weight)
//	os.WriteFile("graph.svg", result.Artifact, 0o644)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mwis/pkg/cache"
	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graphio"
	"github.com/matzehuels/mwis/pkg/mis"
	"github.com/matzehuels/mwis/pkg/render/nodelink"
)

// DefaultLayout is the Graphviz engine used when Options.Layout is empty.
const DefaultLayout = "neato"

// Options configures a pipeline run. Zero values select defaults.
type Options struct {
	// Solve settings.
	Strategy    string
	MaxBranches int
	Parallelism int
	// Refresh skips cache reads; fresh results are still written.
	Refresh bool

	// Render settings. An empty Format skips rendering in Execute.
	Format  string
	Weights bool
	Layout  string

	Logger *log.Logger
}

// ValidateAndSetDefaults checks every option and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if o.Format != "" {
		if err := o.ValidateForRender(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForSolve checks the solver options and fills in their defaults.
func (o *Options) ValidateForSolve() error {
	mo := o.SolverOptions()
	if err := mo.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Strategy = string(mo.Strategy)
	o.MaxBranches = mo.MaxBranches
	o.setLogger()
	return nil
}

// ValidateForRender checks the render options and fills in their defaults.
func (o *Options) ValidateForRender() error {
	switch o.Format {
	case "":
		o.Format = nodelink.FormatSVG
	case nodelink.FormatSVG, nodelink.FormatPNG, nodelink.FormatDOT:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (want svg, png, or dot)", o.Format)
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if !nodelink.ValidLayout(o.Layout) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (want one of %s)", o.Layout, strings.Join(nodelink.Layouts, ", "))
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SolverOptions converts to mis.Options.
func (o Options) SolverOptions() mis.Options {
	return mis.Options{
		Strategy:    mis.Strategy(o.Strategy),
		MaxBranches: o.MaxBranches,
		Parallelism: o.Parallelism,
		Logger:      o.Logger,
	}
}

// ResultKeyOpts returns the options that identify a cached solve result.
func (o Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Strategy: o.Strategy, MaxBranches: o.MaxBranches}
}

// RenderKeyOpts returns the options that identify a cached rendering.
func (o Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:   o.Format,
		Strategy: o.Strategy,
		Layout:   o.Layout,
		Weights:  o.Weights,
	}
}

// Result holds everything one pipeline run produced.
type Result struct {
	Document *graphio.Document
	Graph    *graph.Graph
	Solution *mis.Result
	// Artifact is the rendered output, nil when rendering was skipped.
	Artifact []byte
	// GraphHash identifies the graph structure and weights.
	GraphHash string

	CacheInfo CacheInfo
	Stats     Stats
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	SolveHit  bool
	RenderHit bool
}

// Stats holds sizes and timings of a run.
type Stats struct {
	Vertices   int
	Edges      int
	Components int
	LoadTime   time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}
