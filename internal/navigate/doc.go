// Package navigate answers multi-hop questions over the note graph: from
// these notes, following these kinds of relationship, which notes are
// reached?
//
// # Vocabulary
//
// An Axis names a relationship kind (types, supertypes, associations,
// roles, traverse, loopback) and a Direction picks it or its inverse. A
// Step is one hop along an axis, either direct or transitive, optionally
// carrying Predicates. A Path is a sequence of steps; anchoring it at
// notes gives an AnchoredPath, which a Query wraps:
//
//	q := navigate.From(alice).Types().SupertypesTransitive().Query()
//
// # Engine
//
// Backends implement Adjacency. Of wraps any backend in a Graph, whose
// Navigate binds a query. Evaluation is lazy and pull based: each Iter.Next
// does just enough work to produce one more note. One Frame per step keeps
// an explicit stack of adjacency cursors and FrameSlice chains the frames
// as a nested-loop join, so neither path length nor graph depth grows the
// call stack. Transitive steps track visited notes and terminate on cycles.
//
// # Backends
//
// Empty has no edges, Always answers loopback with the note itself,
// BuiltinTypes knows the fixed built-in taxonomy, MemoryGraph is a mutable
// in-memory graph and Chain concatenates two backends.
package navigate
