// Package nodelink renders weighted graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, doc.Label, res.Vertices, nodelink.Options{Weights: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Selected vertices are filled, the rest are drawn as outlines. Edges are
// undirected: stored edge direction carries no meaning for independent sets.
//
// # Formats
//
// [Render] produces "svg", "png", or the "dot" source itself. Rendering runs
// in-process through [github.com/goccy/go-graphviz]; no Graphviz install is
// needed.
package nodelink
