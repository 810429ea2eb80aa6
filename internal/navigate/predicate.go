package navigate

import (
	"fmt"
	"slices"

	"github.com/HendryAvila/notenav/internal/note"
)

// Membership is the test a predicate applies to the notes its path reaches.
// Include is the only test: the required note must be among them.
type Membership struct {
	include note.Note
}

// Include requires n to be reached.
func Include(n note.Note) Membership {
	return Membership{include: n}
}

// Required returns the note an Include membership looks for.
func (m Membership) Required() note.Note { return m.include }

// Predicate tests a single note: navigate path from it and check the
// membership against what is reached.
type Predicate struct {
	path    Path
	members Membership
}

// NewPredicate builds a predicate from a path and a membership test.
func NewPredicate(path Path, members Membership) Predicate {
	return Predicate{path: slices.Clone(path), members: members}
}

func (p Predicate) Path() Path { return slices.Clone(p.path) }

func (p Predicate) Membership() Membership { return p.members }

// Matches runs the predicate's path anchored at candidate against src and
// reports whether the required note shows up. It stops at the first hit.
func (p Predicate) Matches(src Adjacency, candidate note.Note) (bool, error) {
	it := Of(src).Navigate(From(candidate).Then(p.path...).Query()).Iter()
	for it.Next() {
		if it.Note() == p.members.include {
			return true, nil
		}
	}
	return false, it.Err()
}

// Filter keeps the notes of in for which the predicate matches. It is lazy:
// each candidate is tested when the caller asks for the next one.
func (p Predicate) Filter(src Adjacency, in Cursor) *Filtered {
	return &Filtered{src: src, pred: p, in: in}
}

func (p Predicate) String() string {
	return fmt.Sprintf("[%s has %s]", p.path, p.members.include)
}

// PredicateBuilder accumulates a path and is finalized by a membership test.
type PredicateBuilder struct {
	path Path
}

// Where starts a predicate with the given steps.
func Where(steps ...Step) PredicateBuilder {
	return PredicateBuilder{path: Path(nil).Then(steps...)}
}

func (b PredicateBuilder) Then(steps ...Step) PredicateBuilder {
	b.path = b.path.Then(steps...)
	return b
}

func (b PredicateBuilder) Types() PredicateBuilder      { return b.Then(Types()) }
func (b PredicateBuilder) Instances() PredicateBuilder  { return b.Then(Instances()) }
func (b PredicateBuilder) Supertypes() PredicateBuilder { return b.Then(Supertypes()) }
func (b PredicateBuilder) Subtypes() PredicateBuilder   { return b.Then(Subtypes()) }

func (b PredicateBuilder) SupertypesTransitive() PredicateBuilder {
	return b.Then(SupertypesTransitive())
}

// Include finalizes the predicate: the path must reach n.
func (b PredicateBuilder) Include(n note.Note) Predicate {
	return NewPredicate(b.path, Include(n))
}

// Cursor is a pull-style sequence of notes.
type Cursor interface {
	Next() bool
	Note() note.Note
	Err() error
}

// Notes returns a cursor over a fixed list of notes.
func Notes(notes ...note.Note) Cursor {
	return &sliceCursor{notes: notes, pos: -1}
}

type sliceCursor struct {
	notes []note.Note
	pos   int
}

func (c *sliceCursor) Next() bool {
	if c.pos+1 >= len(c.notes) {
		c.pos = len(c.notes)
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Note() note.Note {
	if c.pos < 0 || c.pos >= len(c.notes) {
		return note.Nil
	}
	return c.notes[c.pos]
}

func (c *sliceCursor) Err() error { return nil }

// Filtered is the cursor returned by Predicate.Filter.
type Filtered struct {
	src  Adjacency
	pred Predicate
	in   Cursor
	cur  note.Note
	err  error
}

func (f *Filtered) Next() bool {
	if f.err != nil {
		return false
	}
	for f.in.Next() {
		n := f.in.Note()
		ok, err := f.pred.Matches(f.src, n)
		if err != nil {
			f.err = err
			return false
		}
		if ok {
			f.cur = n
			return true
		}
	}
	f.err = f.in.Err()
	return false
}

func (f *Filtered) Note() note.Note { return f.cur }

func (f *Filtered) Err() error { return f.err }
