// Package graphio reads and writes weighted graph documents in JSON and TOML.
//
// # Formats
//
// A document lists vertex weights and undirected edges. The indexed form
// refers to vertices by position:
//
//	{
//	  "weights": [2, 10, 2],
//	  "edges": [[0, 1], [1, 2]]
//	}
//
// The named form gives every vertex an id, used as its display label, and
// refers to vertices by id:
//
//	{
//	  "vertices": [
//	    {"id": "a", "weight": 2},
//	    {"id": "b", "weight": 10}
//	  ],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// TOML documents use the same keys:
//
//	weights = [2, 10, 2]
//	edges = [[0, 1], [1, 2]]
//
// or, for the named form, [[vertices]] and [[edges]] tables. Edges of a
// named document may also be index pairs; they then refer to positions in
// the vertices list.
//
// # Reading
//
// [ReadFile] picks the format from the file extension (".toml" for TOML,
// anything else for JSON). [Read] takes an explicit [Format]; the empty
// format sniffs the first non-blank byte.
//
//	doc, err := graphio.ReadFile("graph.toml")
//	g, err := doc.Graph()
//
// Decoding problems are reported with code INVALID_INPUT, bad vertex
// references with INVALID_VERTEX.
//
// # Writing
//
// [Write] emits a document in either format. [Marshal] produces the
// canonical indexed JSON encoding of a graph, stable for a given graph and
// suitable for content hashing.
package graphio
