// Package ir defines the dashboard intermediate representation.
//
// # Overview
//
// A dashboard is a [Dashboard] wrapper (title, description, layout) around an
// ordered list of [Node] trees. Each node has an id, a type tag drawn from
// the registry, an insertion-ordered [Props] map, and optional children.
// The same tree is consumed independently by every backend:
//
//	          ir.Dashboard
//	     ┌────────┼─────────┐
//	 preview   codegen   transfer → export (separate environment)
//
// # Invariants
//
//   - Node ids are unique within a tree ([Validate]).
//   - The tree is acyclic: a node never appears among its own descendants.
//   - Children are meaningful only for container types; a non-container
//     node carrying children is legal and its children are ignored.
//   - The order of Dashboard.Components is significant: it drives layout
//     position and document z-order on export.
//
// # Serialization
//
// [MarshalDashboard] and [ReadDashboard] give a lossless JSON round trip for
// ids, types, props (including their order) and children. Serialization is
// the only durability the tree ever gets.
//
// # Concurrency
//
// Trees are owned by a single editor and are not safe for concurrent
// mutation. Backends only read them.
package ir
