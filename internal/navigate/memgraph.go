package navigate

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/note"
)

// Triple is one edge for bulk loading: source relates to Dest along Axis.
type Triple struct {
	Source note.Note
	Axis   Axis
	Dest   note.Note
}

// Edge is one (from, to) pair of a single relation.
type Edge struct {
	From note.Note
	To   note.Note
}

// relation is one stored axis, indexed both ways.
type relation struct {
	forward map[note.Note][]note.Note
	reverse map[note.Note][]note.Note
}

func newRelation() relation {
	return relation{
		forward: make(map[note.Note][]note.Note),
		reverse: make(map[note.Note][]note.Note),
	}
}

func (r relation) add(from, to note.Note) {
	r.forward[from] = append(r.forward[from], to)
	r.reverse[to] = append(r.reverse[to], from)
}

func (r relation) get(n note.Note, dir Direction) []note.Note {
	if dir == Reverse {
		return r.reverse[n]
	}
	return r.forward[n]
}

// MemoryGraph is a mutable in-memory backend with four relation tables:
// types, supertypes, associations (for the topic role) and roles. Each
// table is a map of adjacency lists keyed by note, indexed in both
// directions. Edges are kept in insertion order and duplicates are kept.
//
// MemoryGraph does no locking. Do not mutate it while an Iter over it is
// in progress, and serialise access from multiple goroutines yourself.
type MemoryGraph struct {
	types        relation
	supertypes   relation
	associations relation
	roles        relation
}

// NewMemoryGraph returns an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		types:        newRelation(),
		supertypes:   newRelation(),
		associations: newRelation(),
		roles:        newRelation(),
	}
}

// NewMemoryGraphWithBuiltins returns a graph holding the built-in taxonomy
// as ordinary, mutable edges.
func NewMemoryGraphWithBuiltins() *MemoryGraph {
	g := NewMemoryGraph()
	if err := g.AddTriples(BuiltinTriples()...); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "builtin triples"))
	}
	return g
}

// resolve finds the table for axis. Hierarchy-shaped Traverse axes are
// simplified first, which may flip the direction.
func (g *MemoryGraph) resolve(axis Axis, dir Direction) (relation, Direction, error) {
	if simple, d, ok := simplifyAxis(axis, dir); ok {
		axis, dir = simple, d
	}
	switch axis.Kind {
	case KindTypes:
		return g.types, dir, nil
	case KindSupertypes:
		return g.supertypes, dir, nil
	case KindRoles:
		return g.roles, dir, nil
	case KindAssociations:
		if axis.Role == note.Topic {
			return g.associations, dir, nil
		}
	}
	return relation{}, dir, Unsupported("memory graph", axis, dir)
}

func (g *MemoryGraph) Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error) {
	rel, d, err := g.resolve(axis, dir)
	if err != nil {
		return nil, err
	}
	return slices.Clone(rel.get(source, d)), nil
}

// AddTriples stores each triple. It stops at the first unsupported axis;
// triples before it stay stored.
func (g *MemoryGraph) AddTriples(triples ...Triple) error {
	for i, t := range triples {
		if err := g.insert(t.Source, t.Axis, Forward, t.Dest); err != nil {
			return errors.Wrapf(err, "triple %d", i)
		}
	}
	return nil
}

// AddEdges stores edges under a single axis.
func (g *MemoryGraph) AddEdges(axis Axis, edges []Edge) error {
	for i, e := range edges {
		if err := g.insert(e.From, axis, Forward, e.To); err != nil {
			return errors.Wrapf(err, "edge %d", i)
		}
	}
	return nil
}

// PushAdjacentNotes makes every destination adjacent to every source along
// step: afterwards navigating step from any source reaches every
// destination. A reverse step stores the inverted edges. Depth and
// predicates of step are ignored.
func (g *MemoryGraph) PushAdjacentNotes(sources []note.Note, step Step, destinations []note.Note) error {
	if _, _, err := g.resolve(step.axis, step.direction); err != nil {
		return err
	}
	for _, src := range sources {
		for _, dst := range destinations {
			if err := g.insert(src, step.axis, step.direction, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *MemoryGraph) insert(src note.Note, axis Axis, dir Direction, dst note.Note) error {
	rel, d, err := g.resolve(axis, dir)
	if err != nil {
		return err
	}
	if d == Reverse {
		src, dst = dst, src
	}
	rel.add(src, dst)
	return nil
}
