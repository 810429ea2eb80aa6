package navigate

import (
	"slices"

	"github.com/HendryAvila/notenav/internal/note"
)

// Graph gives any Adjacency the query surface. It is a thin value wrapper;
// backends never implement it themselves.
type Graph[S Adjacency] struct {
	source S
}

// Of wraps source.
func Of[S Adjacency](source S) Graph[S] {
	return Graph[S]{source: source}
}

// Source returns the wrapped backend.
func (g Graph[S]) Source() S { return g.source }

// Adjacent delegates to the wrapped backend, so a Graph is itself an
// Adjacency and can be chained.
func (g Graph[S]) Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error) {
	return g.source.Adjacent(source, axis, dir)
}

// Navigate binds q to the graph. Nothing is evaluated until Iter.
func (g Graph[S]) Navigate(q Query) Navigate[S] {
	return Navigate[S]{graph: g.source, embark: q.Anchor(), steps: q.Path()}
}

// Chain answers from this graph first and other second.
func (g Graph[S]) Chain(other Adjacency) Graph[Chain] {
	return Of(Chain{First: g.source, Second: other})
}

// Navigate is an unevaluated query bound to a backend. It is reusable:
// every Iter starts from scratch.
type Navigate[S Adjacency] struct {
	graph  S
	embark []note.Note
	steps  Path
}

// Then returns the navigation with more steps appended.
func (n Navigate[S]) Then(steps ...Step) Navigate[S] {
	n.steps = n.steps.Then(steps...)
	return n
}

// Steps returns a copy of the navigation's steps.
func (n Navigate[S]) Steps() Path { return slices.Clone(n.steps) }

// Iter starts evaluation.
func (n Navigate[S]) Iter() *Iter[S] {
	return newIter(n.graph, n.embark, n.steps)
}

// Collect drains a fresh Iter into a slice of leaves.
func (n Navigate[S]) Collect() ([]note.Note, error) {
	var out []note.Note
	it := n.Iter()
	for it.Next() {
		out = append(out, it.Note())
	}
	return out, it.Err()
}

// CollectPaths drains a fresh Iter, keeping the hop path of every leaf.
func (n Navigate[S]) CollectPaths() ([][]note.Note, error) {
	var out [][]note.Note
	it := n.Iter()
	for it.Next() {
		out = append(out, it.Path())
	}
	return out, it.Err()
}
