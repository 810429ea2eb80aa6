package navigate

import (
	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/note"
)

// Adjacency is the one obligation a graph backend has towards the engine:
// enumerate the notes adjacent to source along axis in direction dir.
//
// Implementations must be deterministic: with unchanged backend state the
// same call returns the same notes in the same order. The returned slice
// belongs to the backend and must not be modified. The engine calls
// Adjacent once per expanded note, so backends should be cheap handles.
//
// A backend that does not store an axis/direction combination returns an
// error wrapping ErrUnsupported rather than panicking. A backend whose
// contents are fixed and defined for every axis answers an axis it has no
// facts for with an empty result and no error: Empty, Always and
// BuiltinTypes do this. MemoryGraph and the SQLite store hold only the
// relations they index and report everything else as ErrUnsupported. Chain
// treats both the same way, as contributing nothing.
type Adjacency interface {
	Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error)
}

// AdjacencyFunc adapts a function to the Adjacency interface.
type AdjacencyFunc func(source note.Note, axis Axis, dir Direction) ([]note.Note, error)

func (f AdjacencyFunc) Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error) {
	return f(source, axis, dir)
}

// ErrUnsupported marks an axis/direction combination a backend cannot answer.
var ErrUnsupported = errors.New("unsupported axis")

// Unsupported builds the error a backend returns for a combination it does
// not store.
func Unsupported(backend string, axis Axis, dir Direction) error {
	return errors.WithHint(
		errors.Wrapf(ErrUnsupported, "%s: %s %s", backend, axis, dir),
		"chain this backend with one that stores the axis, or simplify the step first",
	)
}

// IsUnsupported reports whether err wraps ErrUnsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
