// Package traverse walks [graph.Graph] values using the undirected view of
// their edges.
//
// # Walks
//
// [BreadthFirst] and [DepthFirst] visit every vertex reachable from a start
// vertex exactly once. Both are also available as pluggable [Strategy]
// values ([BFS], [DFS]) for code that wants to choose the order at runtime:
//
//	var s traverse.Strategy = traverse.BFS{}
//	s.Traverse(g, 0, func(v int, w float64) {
//	    fmt.Printf("%d (w=%v)\n", v, w)
//	})
//
// # Structure Queries
//
//   - [Component]: vertices reachable from a vertex, in discovery order
//   - [Leaves]: vertices in a component with no followings
//   - [CycleEdge], [FindCycleEdge]: one witness edge lying on a cycle
//   - [Orient]: re-point the edges of a tree so they lead away from a root
//
// A cycle witness is an edge (current, neighbour) found when the walk meets
// an already-visited neighbour that did not discover the current vertex.
// Such an edge is never part of the walk's spanning tree, so it closes a
// cycle with the tree paths to its endpoints. Only existence is certified;
// cycles are not enumerated.
//
// All functions treat out-of-range start vertices as empty graphs.
package traverse
