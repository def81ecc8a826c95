// Package graph provides the dependency graph store and its traversals.
//
// # Overview
//
// A [Graph] maps package names to their direct dependencies. Every name that
// appears as a dependency is also a node, so the graph never holds dangling
// edges, and inserting the same edge twice leaves a single edge behind.
//
// The store is populated once from a dependency source and read afterwards:
//
//	g := graph.New()
//	g.AddEdge("app", "serde")
//	g.AddEdge("app", "tokio")
//	g.AddEdge("tokio", "mio")
//
// # Traversal
//
// [Graph.Walk] produces a depth-first, pre-order sequence of [Record] values.
// Each record carries the depth, the package name, and a [Status] telling
// whether the node was expanded, re-encountered on the current path (a cycle),
// or re-encountered through another branch (already visited):
//
//	for r := range g.Walk("app", graph.WalkOptions{}) {
//	    fmt.Println(graph.FormatRecord(r))
//	}
//
// Setting [WalkOptions.Direction] to [Reverse] walks "who depends on me"
// instead, using a reverse index built fresh for every walk. A non-empty
// [WalkOptions.Exclude] prunes every package whose name contains the filter,
// together with everything reachable only through it.
//
// Sequences are lazy and restartable: ranging over the same sequence twice
// performs two independent walks.
//
// # Loading
//
// [Graph.Load] and [Graph.Apply] are all-or-nothing: mutations are staged on
// a copy of the store and only become visible when every step succeeds.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Concurrent walks over a graph
// that is no longer being modified are safe.
package graph
