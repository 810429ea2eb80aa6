package navigate

import (
	"github.com/HendryAvila/notenav/internal/note"
)

// BuiltinTriples returns the facts of the built-in taxonomy in a fixed
// order:
//   - name and occurrence are subtypes of content;
//   - content, association and topic are subtypes of subject;
//   - every well-known note is an instance of topic;
//   - the concrete data types are instances of data-type;
//   - the hierarchy roles are instances of role-type.
func BuiltinTriples() []Triple {
	super := AxisSupertypes()
	types := AxisTypes()

	triples := []Triple{
		{note.Name, super, note.Content},
		{note.Occurrence, super, note.Content},
		{note.Content, super, note.Subject},
		{note.Association, super, note.Subject},
		{note.Topic, super, note.Subject},
	}
	for _, n := range note.WellKnown() {
		triples = append(triples, Triple{n, types, note.Topic})
	}
	for _, n := range []note.Note{note.DataTypeUTF8, note.DataTypeNote} {
		triples = append(triples, Triple{n, types, note.DataType})
	}
	for _, n := range []note.Note{note.Type, note.Subtype, note.Supertype, note.Instance} {
		triples = append(triples, Triple{n, types, note.RoleType})
	}
	return triples
}

var builtinGraph = NewMemoryGraphWithBuiltins()

// BuiltinTypes answers the types and supertypes axes, in both directions,
// for the built-in taxonomy. Hierarchy-shaped Traverse axes resolve the
// same way Step.TrySimplify rewrites them. Every other axis has no
// built-in edges and yields nothing.
type BuiltinTypes struct{}

func (BuiltinTypes) Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error) {
	if simple, d, ok := simplifyAxis(axis, dir); ok {
		axis, dir = simple, d
	}
	switch axis.Kind {
	case KindTypes, KindSupertypes:
		return builtinGraph.Adjacent(source, axis, dir)
	}
	return nil, nil
}
