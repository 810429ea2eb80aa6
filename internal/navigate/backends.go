package navigate

import (
	"github.com/HendryAvila/notenav/internal/note"
)

// Empty has no edges at all.
type Empty struct{}

func (Empty) Adjacent(note.Note, Axis, Direction) ([]note.Note, error) {
	return nil, nil
}

// Always answers only the loopback axis, with the source itself. Chained
// under another backend it lets a Loopback step carrying predicates test
// the current note.
type Always struct{}

func (Always) Adjacent(source note.Note, axis Axis, _ Direction) ([]note.Note, error) {
	if axis.Kind != KindLoopback {
		return nil, nil
	}
	return []note.Note{source}, nil
}

// Chain concatenates two backends. First's notes always come before
// Second's; nothing is merged or deduplicated. A side that does not support
// the axis contributes nothing; the chain fails only when neither does.
type Chain struct {
	First  Adjacency
	Second Adjacency
}

func (c Chain) Adjacent(source note.Note, axis Axis, dir Direction) ([]note.Note, error) {
	first, errFirst := c.First.Adjacent(source, axis, dir)
	if errFirst != nil && !IsUnsupported(errFirst) {
		return nil, errFirst
	}
	second, errSecond := c.Second.Adjacent(source, axis, dir)
	if errSecond != nil && !IsUnsupported(errSecond) {
		return nil, errSecond
	}
	if errFirst != nil && errSecond != nil {
		return nil, errFirst
	}

	switch {
	case len(second) == 0:
		return first, nil
	case len(first) == 0:
		return second, nil
	}
	out := make([]note.Note, 0, len(first)+len(second))
	out = append(out, first...)
	return append(out, second...), nil
}
