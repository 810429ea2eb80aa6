package navigate

import (
	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/note"
)

// cursor walks one adjacency result.
type cursor struct {
	notes []note.Note
	pos   int
}

// Frame executes one step from a source note.
//
// The frame keeps an explicit stack of adjacency cursors instead of
// recursing. A direct step only ever has the source's own adjacency on the
// stack, so it yields exactly what the backend returned, duplicates and
// all. A transitive step pushes the adjacency of every note it yields and
// records yielded notes in a visited set, which bounds the walk by the
// number of distinct reachable notes even on cyclic graphs.
type Frame[S Adjacency] struct {
	source  S
	step    Step
	stack   []cursor
	visited map[note.Note]struct{}
	err     error
}

// NewFrame returns an unseeded frame for step. It yields nothing until Seed.
func NewFrame[S Adjacency](source S, step Step) *Frame[S] {
	f := &Frame[S]{source: source, step: step}
	if step.IsTransitive() {
		f.visited = make(map[note.Note]struct{})
	}
	return f
}

// Seed discards any in-flight state and restarts the frame from n.
func (f *Frame[S]) Seed(n note.Note) {
	f.reset()
	if f.visited != nil {
		clear(f.visited)
	}
	f.push(n)
}

func (f *Frame[S]) reset() {
	f.stack = f.stack[:0]
	f.err = nil
}

func (f *Frame[S]) push(n note.Note) bool {
	notes, err := f.source.Adjacent(n, f.step.axis, f.step.direction)
	if err != nil {
		f.err = errors.Wrapf(err, "step %s from %s", f.step, n)
		f.stack = f.stack[:0]
		return false
	}
	if len(notes) > 0 {
		f.stack = append(f.stack, cursor{notes: notes})
	}
	return true
}

// Next returns the next note the step reaches, or false once the frame is
// exhausted or has failed. Check Err after a false return.
func (f *Frame[S]) Next() (note.Note, bool) {
	for f.err == nil && len(f.stack) > 0 {
		top := &f.stack[len(f.stack)-1]
		if top.pos >= len(top.notes) {
			f.stack = f.stack[:len(f.stack)-1]
			continue
		}
		n := top.notes[top.pos]
		top.pos++

		if f.visited != nil {
			if _, seen := f.visited[n]; seen {
				continue
			}
			f.visited[n] = struct{}{}
			if !f.push(n) {
				return note.Nil, false
			}
		}

		ok, err := f.accept(n)
		if err != nil {
			f.err = errors.Wrapf(err, "predicate on %s", n)
			return note.Nil, false
		}
		if ok {
			return n, true
		}
	}
	return note.Nil, false
}

// accept applies the step's predicates. Rejected notes are still expanded
// by a transitive step; predicates filter what is yielded, not what is
// reachable.
func (f *Frame[S]) accept(n note.Note) (bool, error) {
	for _, p := range f.step.predicates {
		ok, err := p.Matches(f.source, n)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Err returns the first error the frame hit.
func (f *Frame[S]) Err() error { return f.err }

// FrameSlice composes one frame per step into a nested-loop join over the
// hops: the first frame is the outer loop, the last the innermost. It
// advances iteratively, so path length never grows the call stack.
type FrameSlice[S Adjacency] struct {
	frames []*Frame[S]
	hops   []note.Note
	// pending is used by the empty path, which yields its seed once.
	pending bool
	err     error
}

// NewFrameSlice builds the frames for path.
func NewFrameSlice[S Adjacency](source S, path Path) *FrameSlice[S] {
	fs := &FrameSlice[S]{
		frames: make([]*Frame[S], len(path)),
		hops:   make([]note.Note, len(path)+1),
	}
	for i, step := range path {
		fs.frames[i] = NewFrame(source, step)
	}
	return fs
}

// Seed restarts the whole composition from n.
func (fs *FrameSlice[S]) Seed(n note.Note) {
	clear(fs.hops)
	fs.hops[0] = n
	if len(fs.frames) == 0 {
		fs.pending = true
		return
	}
	for _, f := range fs.frames[1:] {
		f.reset()
	}
	fs.frames[0].Seed(n)
}

// Next yields the next leaf. The deepest frame is tried first; when it runs
// dry the frame above it advances and re-seeds it.
func (fs *FrameSlice[S]) Next() (note.Note, bool) {
	if fs.err != nil {
		return note.Nil, false
	}
	if len(fs.frames) == 0 {
		if fs.pending {
			fs.pending = false
			return fs.hops[0], true
		}
		return note.Nil, false
	}

	last := len(fs.frames) - 1
	i := last
	for {
		f := fs.frames[i]
		n, ok := f.Next()
		if err := f.Err(); err != nil {
			fs.err = err
			return note.Nil, false
		}
		if !ok {
			if i == 0 {
				return note.Nil, false
			}
			i--
			continue
		}
		fs.hops[i+1] = n
		if i == last {
			return n, true
		}
		i++
		fs.frames[i].Seed(n)
	}
}

// Hops returns the notes at every hop boundary for the last leaf yielded:
// the anchor first, the leaf last. The slice is owned by the FrameSlice.
func (fs *FrameSlice[S]) Hops() []note.Note { return fs.hops }

// Err returns the first error any frame hit.
func (fs *FrameSlice[S]) Err() error { return fs.err }
