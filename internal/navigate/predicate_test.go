package navigate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/notenav/internal/note"
)

func drain(t *testing.T, c Cursor) []note.Note {
	t.Helper()
	var out []note.Note
	for c.Next() {
		out = append(out, c.Note())
	}
	require.NoError(t, c.Err())
	return out
}

func TestPredicate_FilterBuiltins(t *testing.T) {
	p := Where().Supertypes().Include(note.Content)

	got := drain(t, p.Filter(BuiltinTypes{}, Notes(note.Name, note.Topic, note.Occurrence, note.Subject)))
	assert.Equal(t, []note.Note{note.Name, note.Occurrence}, got)
}

func TestPredicate_TransitivePath(t *testing.T) {
	p := Where().SupertypesTransitive().Include(note.Subject)

	got := drain(t, p.Filter(BuiltinTypes{}, Notes(note.Name, note.Subject, note.Topic)))
	assert.Equal(t, []note.Note{note.Name, note.Topic}, got)
}

func TestPredicate_EmptyPathMatchesItself(t *testing.T) {
	p := Where().Include(note.Name)

	ok, err := p.Matches(Empty{}, note.Name)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(Empty{}, note.Topic)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicate_FilterKeepsDuplicatesAndOrder(t *testing.T) {
	p := Where().Types().Include(note.Topic)

	got := drain(t, p.Filter(BuiltinTypes{}, Notes(note.Type, note.Name, note.Type)))
	assert.Equal(t, []note.Note{note.Type, note.Name, note.Type}, got)
}

func TestPredicate_FilterEmptyInput(t *testing.T) {
	p := Where().Types().Include(note.Topic)
	assert.Empty(t, drain(t, p.Filter(BuiltinTypes{}, Notes())))
}

func TestPredicate_FilterStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	src := AdjacencyFunc(func(note.Note, Axis, Direction) ([]note.Note, error) {
		return nil, boom
	})
	f := Where().Types().Include(note.Topic).Filter(src, Notes(note.Name, note.Topic))

	assert.False(t, f.Next())
	assert.ErrorIs(t, f.Err(), boom)
	assert.False(t, f.Next())
}

func TestPredicate_IsLazy(t *testing.T) {
	calls := 0
	src := AdjacencyFunc(func(source note.Note, _ Axis, _ Direction) ([]note.Note, error) {
		calls++
		return []note.Note{source}, nil
	})
	f := Where(Loopback()).Include(note.Name).Filter(src, Notes(note.Name, note.Topic, note.Name))

	require.True(t, f.Next())
	assert.Equal(t, 1, calls)
	require.True(t, f.Next())
	assert.Equal(t, 3, calls)
}

func TestPredicate_PathIsCopied(t *testing.T) {
	path := Path{Types()}
	p := NewPredicate(path, Include(note.Topic))
	path[0] = Loopback()

	assert.Equal(t, KindTypes, p.Path()[0].Axis().Kind)
	assert.Equal(t, note.Topic, p.Membership().Required())
}

func TestPredicate_String(t *testing.T) {
	p := Where().Types().Include(note.Topic)
	assert.Equal(t, "[types has "+note.Topic.String()+"]", p.String())
}

func TestNotes_CursorBounds(t *testing.T) {
	c := Notes(note.Name)
	assert.Equal(t, note.Nil, c.Note())
	require.True(t, c.Next())
	assert.Equal(t, note.Name, c.Note())
	assert.False(t, c.Next())
	assert.Equal(t, note.Nil, c.Note())
}
