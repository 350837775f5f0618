// Package mis computes maximum-weight independent sets.
//
// An independent set is a set of vertices no two of which share an edge; its
// weight is the sum of its vertex weights. [Solve] splits a graph into
// connected components and solves each one independently:
//
//   - Acyclic components (trees) are solved exactly in linear time by a
//     bottom-up dynamic program. For every vertex v it tracks the best weight
//     of v's subtree with no restriction on v, and the best weight with v
//     excluded, together with the vertex sets achieving them.
//   - Cyclic components are handled according to [Options.Strategy]. The
//     default [StrategyBranch] picks an edge (x, y) on a cycle and keeps the
//     better of the graphs without x and without y, recursing until every
//     remaining piece is a forest. [StrategyNone] rejects cyclic input.
//
// # Solution sharing
//
// A parent's candidate set reuses its children's candidate sets instead of
// copying them. The sets live in a per-component arena of immutable nodes
// addressed by small integer handles; a set is materialised into a vertex
// list only once, when the component's answer is read at the root.
//
// # Ties
//
// When including a vertex gives exactly the same weight as excluding it, the
// vertex is excluded. Leaves with a negative weight are never selected.
//
// # Concurrency
//
// Components share no mutable state. With [Options.Parallelism] above one they
// are solved concurrently; results are always reported in component order.
package mis
