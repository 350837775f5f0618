package graphio

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/graph"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Document is a decoded graph document.
type Document struct {
	Weights []float64
	// Labels holds vertex ids for named documents and is nil otherwise.
	Labels []string
	Edges  []graph.Edge
}

// FromGraph builds a document describing g. labels may be nil.
func FromGraph(g *graph.Graph, labels []string) *Document {
	return &Document{Weights: g.Weights(), Labels: labels, Edges: g.Edges()}
}

// Graph builds the graph described by the document.
func (d *Document) Graph() (*graph.Graph, error) {
	g, err := graph.WithEdges(d.Weights, d.Edges)
	if stderrors.Is(err, graph.ErrNonFiniteWeight) {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build graph")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVertex, err, "build graph")
	}
	return g, nil
}

// Named reports whether the document carries vertex ids.
func (d *Document) Named() bool { return d.Labels != nil }

// Label returns the display label of vertex v: its id for named documents,
// its index otherwise.
func (d *Document) Label(v int) string {
	if v >= 0 && v < len(d.Labels) {
		return d.Labels[v]
	}
	return strconv.Itoa(v)
}

// LabelsOf maps vertex indices to their labels.
func (d *Document) LabelsOf(vertices []int) []string {
	out := make([]string, len(vertices))
	for i, v := range vertices {
		out[i] = d.Label(v)
	}
	return out
}

// wireDoc is the on-disk shape shared by both formats.
type wireDoc struct {
	Weights  []float64    `json:"weights,omitempty" toml:"weights,omitempty"`
	Vertices []wireVertex `json:"vertices,omitempty" toml:"vertices,omitempty"`
	Edges    []wireEdge   `json:"edges" toml:"edges"`
}

type wireVertex struct {
	ID     string  `json:"id" toml:"id"`
	Weight float64 `json:"weight" toml:"weight"`
}

// wireEdge is either an index pair or a from/to pair of vertex ids.
type wireEdge struct {
	Pair     []int
	From, To string
}

func (e wireEdge) indexed() bool { return e.Pair != nil }

// document validates a decoded wire document and resolves vertex ids.
func (w *wireDoc) document() (*Document, error) {
	if w.Weights != nil && w.Vertices != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has both weights and vertices")
	}

	doc := &Document{Weights: w.Weights, Edges: make([]graph.Edge, 0, len(w.Edges))}
	ids := map[string]int{}
	if w.Vertices != nil {
		doc.Weights = make([]float64, len(w.Vertices))
		doc.Labels = make([]string, len(w.Vertices))
		for i, v := range w.Vertices {
			if v.ID == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "vertex %d: missing id", i)
			}
			if _, dup := ids[v.ID]; dup {
				return nil, errors.New(errors.ErrCodeInvalidInput, "vertex %d: duplicate id %q", i, v.ID)
			}
			ids[v.ID] = i
			doc.Weights[i] = v.Weight
			doc.Labels[i] = v.ID
		}
	}
	if doc.Weights == nil {
		doc.Weights = []float64{}
	}

	for i, e := range w.Edges {
		if e.indexed() {
			if len(e.Pair) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: want 2 vertices, got %d", i, len(e.Pair))
			}
			doc.Edges = append(doc.Edges, graph.Edge{From: e.Pair[0], To: e.Pair[1]})
			continue
		}
		if doc.Labels == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: named edge in a document without vertex ids", i)
		}
		from, ok := ids[e.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "edge %d: unknown vertex %q", i, e.From)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidVertex, "edge %d: unknown vertex %q", i, e.To)
		}
		doc.Edges = append(doc.Edges, graph.Edge{From: from, To: to})
	}
	return doc, nil
}

// wire converts the document back to its on-disk shape.
func (d *Document) wire() wireDoc {
	var w wireDoc
	w.Edges = make([]wireEdge, len(d.Edges))
	if !d.Named() {
		w.Weights = d.Weights
		if w.Weights == nil {
			w.Weights = []float64{}
		}
		for i, e := range d.Edges {
			w.Edges[i] = wireEdge{Pair: []int{e.From, e.To}}
		}
		return w
	}
	w.Vertices = make([]wireVertex, len(d.Weights))
	for i, wt := range d.Weights {
		w.Vertices[i] = wireVertex{ID: d.Label(i), Weight: wt}
	}
	for i, e := range d.Edges {
		w.Edges[i] = wireEdge{From: d.Label(e.From), To: d.Label(e.To)}
	}
	return w
}

func (f Format) String() string { return string(f) }

// ParseFormat validates s and returns the matching Format. The empty string
// yields the empty Format, meaning "detect".
func ParseFormat(s string) (Format, error) {
	if err := errors.ValidateFormat(s); err != nil {
		return "", err
	}
	return Format(strings.ToLower(s)), nil
}
