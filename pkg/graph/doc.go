// Package graph provides the weighted, edge-listed graph that the mwis solver
// operates on.
//
// # Overview
//
// Vertices are dense integer indices 0..n-1, each carrying an immutable
// float64 weight. Every logical edge (u, v) is stored as two half-edges: a
// [Forward] half-edge on u pointing at v, and a [Backward] half-edge on v
// pointing back at u. This lets a vertex answer both "who do I point at"
// ([Graph.Following], the children in a rooted reading) and "who points at me"
// ([Graph.Followers], the parents) without scanning the whole graph.
//
// # Basic Usage
//
//	g := graph.New([]float64{2, 10, 2})
//	_ = g.AddEdge(0, 1)
//	_ = g.AddEdge(1, 2)
//
//	g.Following(1)   // [2]
//	g.Followers(1)   // [0]
//	g.Neighbors(1)   // [0 2]
//	g.Followerless() // [0]   root candidates
//	g.Followless()   // [2]   leaf candidates
//
// [Graph.AddEdge] fails fast on out-of-range indices, self-loops, and
// duplicate edges, so the half-edge pairing can never be broken by input.
//
// # Derived Graphs
//
// [Graph.WithoutEdge] and [Graph.WithoutVertex] return new graphs and never
// modify the receiver. Removing a vertex shifts every higher index down by
// one, matching how the weights slice shrinks. Adjacency lists that are not
// affected by an edge removal are shared with the source graph but clipped,
// so a later AddEdge on either graph reallocates instead of aliasing.
//
// # Concurrency
//
// A Graph is safe for concurrent reads once construction is finished.
// AddEdge is the only mutating method and must not race with readers.
//
// # Related Packages
//
// The [traverse] subpackage walks graphs (BFS, DFS, leaves, cycle witnesses,
// rooting a tree). The [component] subpackage splits a graph into its
// connected components.
//
// [traverse]: github.com/matzehuels/mwis/pkg/graph/traverse
// [component]: github.com/matzehuels/mwis/pkg/graph/component
package graph
