// Package pkg provides the libraries behind mwis, a solver for the
// maximum-weight independent set problem on sparse, mostly acyclic graphs.
//
// # Overview
//
// Given a graph whose vertices carry real weights, mwis selects a set of
// pairwise non-adjacent vertices with the largest total weight. Every
// connected component is solved separately: trees exactly in linear time by
// a bottom-up dynamic program, components with cycles by branching on a cycle
// edge until the remainder is a forest.
//
// The typical data flow:
//
//	graph document (JSON or TOML)
//	         ↓
//	    graphio package (decode, map labels to indices)
//	         ↓
//	    graph/component package (split into connected components)
//	         ↓
//	    mis package (tree DP, cycle branching, aggregation)
//	         ↓
//	    render/nodelink package (SVG/PNG/DOT with the selection highlighted)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mwis/pkg/graph"
//	    "github.com/matzehuels/mwis/pkg/mis"
//	)
//
//	g, _ := graph.WithEdges([]float64{2, 10, 2}, []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}})
//	res, _ := mis.Solve(ctx, g, mis.Options{})
//	fmt.Println(res.Weight, res.Vertices) // 10 [1]
//
// # Algorithms
//
// graph - Vertex-weighted graph with paired half-edges. Edges keep the
// direction they were added with; the solver treats them as undirected.
//
// graph/traverse - Breadth- and depth-first walks, leaf discovery, cycle
// detection, and orientation of trees away from a root.
//
// graph/component - Connected-component decomposition with index maps back
// to the input graph.
//
// mis - The solver. mis.Solve decomposes, solves components (optionally
// in parallel) and merges the results.
//
// # Infrastructure
//
// graphio - Graph documents on disk and on the wire.
//
// cache - Result and rendering cache with file, Redis, and null backends.
//
// pipeline - load → solve → render with caching, shared by CLI and API.
//
// api - HTTP API over a pipeline runner.
//
// config - TOML configuration.
//
// observability - Hooks for metrics and tracing of solves, cache, and HTTP.
//
// errors - Error codes shared by every package.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/mis/...        # Solver only
//	go test -run Example ./...   # Examples only
//
// Set MWIS_TEST_REDIS_URL to run the Redis cache tests against a live server.
package pkg
