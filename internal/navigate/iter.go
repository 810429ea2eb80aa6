package navigate

import (
	"slices"

	"github.com/HendryAvila/notenav/internal/note"
)

// Iter evaluates a navigation. Anchors are taken in order and each one is
// drained completely before the next is seeded.
//
//	it := nav.Iter()
//	for it.Next() {
//		leaf, hops := it.Note(), it.Path()
//	}
//	if err := it.Err(); err != nil { ... }
//
// Dropping an Iter part way is fine; it holds no resources beyond memory.
type Iter[S Adjacency] struct {
	embark []note.Note
	pos    int
	slice  *FrameSlice[S]
	active bool
	cur    note.Note
	err    error
}

func newIter[S Adjacency](source S, embark []note.Note, path Path) *Iter[S] {
	return &Iter[S]{
		embark: embark,
		slice:  NewFrameSlice(source, path),
	}
}

// Next advances to the next result. It returns false when the navigation
// is exhausted or an error occurred.
func (it *Iter[S]) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		if it.active {
			if n, ok := it.slice.Next(); ok {
				it.cur = n
				return true
			}
			if err := it.slice.Err(); err != nil {
				it.err = err
				return false
			}
			it.active = false
		}
		if it.pos >= len(it.embark) {
			it.cur = note.Nil
			return false
		}
		it.slice.Seed(it.embark[it.pos])
		it.pos++
		it.active = true
	}
}

// Note returns the current result.
func (it *Iter[S]) Note() note.Note { return it.cur }

// Path returns the full hop path of the current result: the anchor, the
// note reached by each step, the current result last.
func (it *Iter[S]) Path() []note.Note {
	return slices.Clone(it.slice.Hops())
}

// Err returns the error that stopped iteration, if any.
func (it *Iter[S]) Err() error { return it.err }
