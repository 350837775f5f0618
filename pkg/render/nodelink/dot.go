package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
)

// Output formats accepted by Render.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Layouts lists the Graphviz layout engines Render accepts.
var Layouts = []string{"circo", "dot", "fdp", "neato", "osage", "patchwork", "sfdp", "twopi"}

// ValidLayout reports whether name is one of Layouts.
func ValidLayout(name string) bool {
	for _, l := range Layouts {
		if l == name {
			return true
		}
	}
	return false
}

// Options configures node-link diagram rendering.
type Options struct {
	// Weights appends each vertex weight to its label.
	Weights bool
	// Layout names the Graphviz layout engine, one of Layouts. Empty means
	// neato.
	Layout string
}

// ToDOT converts g to an undirected Graphviz graph. label names vertices and
// may be nil, in which case indices are used. Vertices in selected are drawn
// filled.
func ToDOT(g *graph.Graph, label func(int) string, selected []int, opts Options) string {
	if label == nil {
		label = strconv.Itoa
	}
	chosen := make(map[int]bool, len(selected))
	for _, v := range selected {
		chosen[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%q;\n", layoutName(opts.Layout))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for v := range g.VertexCount() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(label(v), g.Weight(v), opts.Weights))}
		if chosen[v] {
			attrs = append(attrs, "fillcolor=\"#4c9be8\"", "fontcolor=white", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  v%d -- v%d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(name string, weight float64, withWeight bool) string {
	if !withWeight {
		return name
	}
	return name + "\n" + strconv.FormatFloat(weight, 'g', -1, 64)
}

func layoutName(name string) string {
	if name == "" {
		return "neato"
	}
	return name
}

// Render turns DOT source into the requested format.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG, "":
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return render(ctx, dot, graphviz.PNG)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (want svg, png, or dot)", format)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	if name := layoutAttr(dot); name != "" {
		if !ValidLayout(name) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout %q", name)
		}
		gv.SetLayout(graphviz.Layout(name))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	layoutRe  = regexp.MustCompile(`(?m)^\s*layout\s*=\s*"?([a-z]+)"?\s*;`)
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func layoutAttr(dot string) string {
	if m := layoutRe.FindStringSubmatch(dot); m != nil {
		return m[1]
	}
	return ""
}

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-based one so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
