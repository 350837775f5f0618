package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mwis/pkg/errors"
)

// FormatForPath guesses a format from a file extension. Unknown extensions
// yield the empty Format, which makes Read sniff the content.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}
	return ""
}

// Read decodes a document from r. An empty format sniffs the content: input
// starting with '{' is JSON, anything else TOML. Read does not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if format == "" {
		format = sniff(data)
	}

	if format == FormatTOML {
		return decodeTOML(data)
	}
	return decodeJSON(data)
}

// ReadFile reads the document at path, picking the format from its
// extension.
func ReadFile(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatTOML
}

func decodeJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireDoc
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return w.document()
}

// decodeTOML decodes into generic values and re-reads them through the JSON
// path, so both formats share one set of validation rules.
func decodeTOML(data []byte) (*Document, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	return decodeJSON(b)
}

func (e *wireEdge) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pair []int
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if pair == nil {
			pair = []int{}
		}
		e.Pair = pair
		return nil
	}

	var named struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(b, &named); err != nil {
		return err
	}
	e.From, e.To = named.From, named.To
	return nil
}
