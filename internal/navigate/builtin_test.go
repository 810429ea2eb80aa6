package navigate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/notenav/internal/note"
)

func TestBuiltinTypes_Hierarchy(t *testing.T) {
	tests := []struct {
		name string
		path AnchoredPath
		want []note.Note
	}{
		{"name supertypes", From(note.Name).Supertypes(), []note.Note{note.Content}},
		{"content subtypes", From(note.Content).Subtypes(), []note.Note{note.Name, note.Occurrence}},
		{"subject subtypes", From(note.Subject).Subtypes(), []note.Note{note.Content, note.Association, note.Topic}},
		{"name ancestors", From(note.Name).SupertypesTransitive(), []note.Note{note.Content, note.Subject}},
		{"subject descendants", From(note.Subject).SubtypesTransitive(),
			[]note.Note{note.Content, note.Name, note.Occurrence, note.Association, note.Topic}},
		{"utf8 types", From(note.DataTypeUTF8).Types(), []note.Note{note.Topic, note.DataType}},
		{"data type instances", From(note.DataType).Instances(), []note.Note{note.DataTypeUTF8, note.DataTypeNote}},
		{"role types", From(note.Supertype).Types(), []note.Note{note.Topic, note.RoleType}},
		{"subject has no supertypes", From(note.Subject).Supertypes(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, BuiltinTypes{}, tt.path))
		})
	}
}

func TestBuiltinTypes_EveryWellKnownIsATopic(t *testing.T) {
	got := collect(t, BuiltinTypes{}, From(note.Topic).Instances())
	assert.ElementsMatch(t, note.WellKnown(), got)
}

func TestBuiltinTypes_TraverseMatchesSimplified(t *testing.T) {
	tests := []struct {
		traverse Step
		simple   Step
	}{
		{Traverse(note.Subtype, note.Supertype), Supertypes()},
		{Traverse(note.Supertype, note.Subtype), Subtypes()},
		{Traverse(note.Instance, note.Type), Types()},
		{Traverse(note.Type, note.Instance), Instances()},
	}
	for _, tt := range tests {
		for _, n := range []note.Note{note.Name, note.Content, note.Subject, note.Topic, note.DataType} {
			want := collect(t, BuiltinTypes{}, From(n).Then(tt.simple))
			got := collect(t, BuiltinTypes{}, From(n).Then(tt.traverse))
			assert.Equal(t, want, got, "%s from %s", tt.traverse, n)
		}
	}
}

func TestBuiltinTypes_OtherAxesAreEmpty(t *testing.T) {
	for _, s := range []Step{Loopback(), Roles(), Associations(note.Topic), Traverse(note.Topic, note.Name)} {
		got, err := BuiltinTypes{}.Adjacent(note.Name, s.Axis(), s.Direction())
		require.NoError(t, err)
		assert.Empty(t, got, s.String())
	}
}

func TestBuiltinTypes_UnknownNote(t *testing.T) {
	assert.Empty(t, collect(t, BuiltinTypes{}, From(note.New()).SupertypesTransitive()))
}
