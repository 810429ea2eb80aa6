package navigate

import (
	"slices"

	"github.com/HendryAvila/notenav/internal/note"
)

// AnchoredStep is a single step bound to the notes it starts from.
type AnchoredStep struct {
	Anchor []note.Note
	Step   Step
}

// AnchoredPath widens the step into a one-step anchored path.
func (a AnchoredStep) AnchoredPath() AnchoredPath {
	return AnchoredPath{Anchor: a.Anchor, Path: Path{a.Step}}
}

// AnchoredPath is a path bound to the ordered notes it starts from.
// Anchors may repeat; their order is the order results come out in.
type AnchoredPath struct {
	Anchor []note.Note
	Path   Path
}

// From starts an anchored path at the given notes.
func From(anchor ...note.Note) AnchoredPath {
	return AnchoredPath{Anchor: slices.Clone(anchor)}
}

// Then appends steps.
func (a AnchoredPath) Then(steps ...Step) AnchoredPath {
	a.Path = a.Path.Then(steps...)
	return a
}

func (a AnchoredPath) Types() AnchoredPath                { return a.Then(Types()) }
func (a AnchoredPath) Instances() AnchoredPath            { return a.Then(Instances()) }
func (a AnchoredPath) Supertypes() AnchoredPath           { return a.Then(Supertypes()) }
func (a AnchoredPath) Subtypes() AnchoredPath             { return a.Then(Subtypes()) }
func (a AnchoredPath) SupertypesTransitive() AnchoredPath { return a.Then(SupertypesTransitive()) }
func (a AnchoredPath) SubtypesTransitive() AnchoredPath   { return a.Then(SubtypesTransitive()) }
func (a AnchoredPath) Loopback() AnchoredPath             { return a.Then(Loopback()) }

func (a AnchoredPath) Traverse(fromRole, toRole note.Note) AnchoredPath {
	return a.Then(Traverse(fromRole, toRole))
}

// Query finalizes the anchored path.
func (a AnchoredPath) Query() Query {
	return NewQuery(a)
}

// Query is the only input Graph.Navigate accepts.
type Query struct {
	path AnchoredPath
}

// NewQuery wraps an anchored path. Anchor and steps are copied so later
// changes to the caller's slices do not leak into the query.
func NewQuery(ap AnchoredPath) Query {
	return Query{path: AnchoredPath{
		Anchor: slices.Clone(ap.Anchor),
		Path:   slices.Clone(ap.Path),
	}}
}

func (q Query) Anchor() []note.Note { return slices.Clone(q.path.Anchor) }

func (q Query) Path() Path { return slices.Clone(q.path.Path) }
