package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mwis/pkg/graph"
)

type tomlIndexed struct {
	Weights []float64 `toml:"weights"`
	Edges   [][]int   `toml:"edges"`
}

type tomlNamed struct {
	Vertices []wireVertex `toml:"vertices"`
	Edges    []namedEdge  `toml:"edges"`
}

type namedEdge struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// Write encodes doc to w. The empty format writes JSON.
func Write(w io.Writer, doc *Document, format Format) error {
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}

	if format == FormatTOML {
		if err := toml.NewEncoder(w).Encode(doc.tomlValue()); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc.wire()); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteFile writes doc to path. The empty format is chosen from the
// extension, defaulting to JSON.
func WriteFile(path string, doc *Document, format Format) error {
	if format == "" {
		format = FormatForPath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Marshal returns the canonical compact JSON encoding of g in indexed form.
// Equal graphs (same weights, same edges in the same order) encode to equal
// bytes.
func Marshal(g *graph.Graph) ([]byte, error) {
	return json.Marshal(FromGraph(g, nil).wire())
}

func (d *Document) tomlValue() any {
	if !d.Named() {
		v := tomlIndexed{Weights: d.Weights, Edges: make([][]int, len(d.Edges))}
		if v.Weights == nil {
			v.Weights = []float64{}
		}
		for i, e := range d.Edges {
			v.Edges[i] = []int{e.From, e.To}
		}
		return v
	}
	w := d.wire()
	v := tomlNamed{Vertices: w.Vertices, Edges: make([]namedEdge, len(w.Edges))}
	for i, e := range w.Edges {
		v.Edges[i] = namedEdge{From: e.From, To: e.To}
	}
	return v
}

func (e wireEdge) MarshalJSON() ([]byte, error) {
	if e.indexed() {
		return json.Marshal(e.Pair)
	}
	return json.Marshal(namedEdge{From: e.From, To: e.To})
}
