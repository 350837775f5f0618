// Package render groups the visual outputs of a solved graph.
//
// The [nodelink] subpackage draws the graph as a classic node-link diagram
// with the selected independent set highlighted, using Graphviz:
//
//	dot := nodelink.ToDOT(g, doc.Label, res.Vertices, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/mwis/pkg/render/nodelink
package render
