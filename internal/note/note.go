// Package note defines the identity of a vertex in the note graph.
//
// A Note is an opaque, globally unique 128-bit identifier. It is a plain
// value: copy it freely, compare it with ==, order it with Compare. Nothing
// about a note's properties lives here; the graph backends and the store
// attach meaning to notes through typed relations.
package note

import (
	"bytes"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Note is the identifier of a note.
type Note uuid.UUID

// Nil is the zero note. It never names a real note.
var Nil Note

// New returns a fresh random note identifier.
func New() Note {
	return Note(uuid.New())
}

// Parse reads a note from its canonical UUID text form.
func Parse(s string) (Note, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, errors.Wrapf(err, "parse note %q", s)
	}
	return Note(u), nil
}

// MustParse is Parse that panics on malformed input. Use it for literals only.
func MustParse(s string) Note {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Note) String() string {
	return uuid.UUID(n).String()
}

// IsNil reports whether n is the zero note.
func (n Note) IsNil() bool {
	return n == Nil
}

// Compare orders notes bytewise. It returns -1, 0 or +1.
func (n Note) Compare(other Note) int {
	return bytes.Compare(n[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (n Note) MarshalText() ([]byte, error) {
	return uuid.UUID(n).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Note) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return errors.Wrapf(err, "parse note %q", data)
	}
	*n = Note(u)
	return nil
}

// Sort orders notes in place using Compare.
func Sort(notes []Note) {
	slices.SortFunc(notes, Note.Compare)
}
