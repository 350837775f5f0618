package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mwis/pkg/cache"
	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
	"github.com/matzehuels/mwis/pkg/graphio"
	"github.com/matzehuels/mwis/pkg/mis"
	"github.com/matzehuels/mwis/pkg/observability"
	"github.com/matzehuels/mwis/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ResultTTL overrides cache.TTLResult when positive.
	ResultTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads the document at path, solves it, and renders it when
// opts.Format is set.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	doc, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	g, err := doc.Graph()
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Graph = g
	result.GraphHash, err = GraphHash(g)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Vertices = g.VertexCount()
	result.Stats.Edges = g.EdgeCount()

	r.Logger.Info("loaded graph",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	solveStart := time.Now()
	sol, hit, err := r.SolveWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solution = sol
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.Components = len(sol.Components)
	result.CacheInfo.SolveHit = hit

	if opts.Format == "" {
		return result, nil
	}

	renderStart := time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, doc, sol, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered graph",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads a graph document from path.
func (r *Runner) Load(ctx context.Context, path string) (*graphio.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := graphio.ReadFile(path)
	vertices := 0
	if doc != nil {
		vertices = len(doc.Weights)
	}
	hooks.OnLoadComplete(ctx, path, vertices, time.Since(start), err)
	return doc, err
}

// SolveWithCacheInfo solves g with caching and reports whether the result
// came from the cache. Errors are never cached.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*mis.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}

	graphHash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ResultKey(graphHash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached mis.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				r.Logger.Debug("solve result from cache", "weight", cached.Weight)
				return &cached, true, nil
			}
			// Undecodable entry: fall through and overwrite it.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	res, err := mis.Solve(ctx, g, opts.SolverOptions())
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.resultTTL()); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return res, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, g *graph.Graph, opts Options) (*mis.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, g, opts)
	return res, err
}

// RenderWithCacheInfo draws doc with sol highlighted and reports whether the
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *graphio.Document, sol *mis.Result, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash document: %w", err)
	}
	keyOpts := opts.RenderKeyOpts()
	keyOpts.Selection = SelectionHash(sol)
	cacheKey := r.Keyer.RenderKey(docHash, keyOpts)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	artifact, err := r.render(ctx, doc, sol, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, artifact, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(artifact))
	}
	return artifact, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *graphio.Document, sol *mis.Result, opts Options) ([]byte, error) {
	artifact, _, err := r.RenderWithCacheInfo(ctx, doc, sol, opts)
	return artifact, err
}

func (r *Runner) render(ctx context.Context, doc *graphio.Document, sol *mis.Result, opts Options) ([]byte, error) {
	g, err := doc.Graph()
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(g, doc.Label, sol.Vertices, nodelink.Options{
		Weights: opts.Weights,
		Layout:  opts.Layout,
	})
	return nodelink.Render(ctx, dot, opts.Format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) resultTTL() time.Duration {
	if r.ResultTTL > 0 {
		return r.ResultTTL
	}
	return cache.TTLResult
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// GraphHash returns the SHA-256 of the canonical encoding of g. Graphs
// with NaN or infinite weights have no encoding and are rejected.
func GraphHash(g *graph.Graph) (string, error) {
	data, err := graphio.Marshal(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "hash graph")
	}
	return cache.Hash(data), nil
}

// DocumentHash returns the SHA-256 of doc's JSON encoding, labels included.
func DocumentHash(doc *graphio.Document) (string, error) {
	var buf bytes.Buffer
	if err := graphio.Write(&buf, doc, graphio.FormatJSON); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// SelectionHash returns the SHA-256 of the vertices selected by sol.
func SelectionHash(sol *mis.Result) string {
	var buf bytes.Buffer
	for _, v := range sol.Vertices {
		buf.WriteString(strconv.Itoa(v))
		buf.WriteByte(',')
	}
	return cache.Hash(buf.Bytes())
}
