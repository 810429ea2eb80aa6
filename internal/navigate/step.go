package navigate

import (
	"slices"
	"strings"

	"github.com/HendryAvila/notenav/internal/note"
)

type depth uint8

const (
	direct depth = iota
	transitive
)

// Step is one traversal hop: an axis, a direction, a depth and the
// predicates a reached note must satisfy. Steps are values; every builder
// method returns a new Step and leaves the receiver untouched.
type Step struct {
	axis       Axis
	direction  Direction
	depth      depth
	predicates []Predicate
}

// NewStep returns a direct step along axis in direction dir.
func NewStep(axis Axis, dir Direction) Step {
	return Step{axis: axis, direction: dir}
}

// Types steps from an instance to its types.
func Types() Step { return NewStep(AxisTypes(), Forward) }

// Instances steps from a type to its instances.
func Instances() Step { return NewStep(AxisTypes(), Reverse) }

// Supertypes steps from a type to its direct supertypes.
func Supertypes() Step { return NewStep(AxisSupertypes(), Forward) }

// Subtypes steps from a type to its direct subtypes.
func Subtypes() Step { return NewStep(AxisSupertypes(), Reverse) }

// SupertypesTransitive reaches every ancestor type.
func SupertypesTransitive() Step { return Supertypes().Transitive() }

// SubtypesTransitive reaches every descendant type.
func SubtypesTransitive() Step { return Subtypes().Transitive() }

// Traverse steps across an association from fromRole to toRole.
func Traverse(fromRole, toRole note.Note) Step {
	return NewStep(AxisTraverse(fromRole, toRole), Forward)
}

// Loopback stays on the current note. Paired with a predicate it tests a
// property of the note without moving.
func Loopback() Step { return NewStep(AxisLoopback(), Forward) }

// Associations steps from a player to the associations it plays role in.
func Associations(role note.Note) Step {
	return NewStep(AxisAssociations(role), Forward)
}

// Players steps from an association to the notes playing role in it.
func Players(role note.Note) Step {
	return NewStep(AxisAssociations(role), Reverse)
}

// Roles steps from an association to its roles.
func Roles() Step { return NewStep(AxisRoles(), Forward) }

func (s Step) Axis() Axis { return s.axis }

func (s Step) Direction() Direction { return s.direction }

// IsTransitive reports whether the step repeats until no new notes appear.
func (s Step) IsTransitive() bool { return s.depth == transitive }

// Predicates returns a copy of the step's predicates.
func (s Step) Predicates() []Predicate {
	return slices.Clone(s.predicates)
}

// Negate flips the direction and nothing else.
func (s Step) Negate() Step {
	s.direction = s.direction.Negate()
	return s
}

// Transitive returns the step with transitive depth.
func (s Step) Transitive() Step {
	s.depth = transitive
	return s
}

// Direct returns the step with direct depth.
func (s Step) Direct() Step {
	s.depth = direct
	return s
}

// WithPredicate appends p to the step's predicates.
func (s Step) WithPredicate(p Predicate) Step {
	s.predicates = append(slices.Clip(s.predicates), p)
	return s
}

// TrySimplify rewrites the Traverse forms that spell out a type hierarchy
// into the equivalent Supertypes or Types step. Depth and predicates carry
// over. It reports false when no rewrite applies.
func (s Step) TrySimplify() (Step, bool) {
	axis, dir, ok := simplifyAxis(s.axis, s.direction)
	if !ok {
		return s, false
	}
	s.axis, s.direction = axis, dir
	return s, true
}

// simplifyAxis maps the four hierarchy-shaped Traverse axes onto the stored
// axes. A reverse traverse is the forward traverse with its roles swapped,
// so the step direction composes with the rewrite direction.
func simplifyAxis(axis Axis, dir Direction) (Axis, Direction, bool) {
	if axis.Kind != KindTraverse {
		return axis, dir, false
	}
	var (
		out     Axis
		flipped bool
	)
	switch {
	case axis.FromRole == note.Subtype && axis.ToRole == note.Supertype:
		out = AxisSupertypes()
	case axis.FromRole == note.Supertype && axis.ToRole == note.Subtype:
		out, flipped = AxisSupertypes(), true
	case axis.FromRole == note.Instance && axis.ToRole == note.Type:
		out = AxisTypes()
	case axis.FromRole == note.Type && axis.ToRole == note.Instance:
		out, flipped = AxisTypes(), true
	default:
		return axis, dir, false
	}
	if flipped {
		dir = dir.Negate()
	}
	return out, dir, true
}

func (s Step) String() string {
	var b strings.Builder
	if s.direction == Reverse {
		b.WriteByte('~')
	}
	b.WriteString(s.axis.String())
	if s.depth == transitive {
		b.WriteByte('+')
	}
	for _, p := range s.predicates {
		b.WriteString(p.String())
	}
	return b.String()
}

// Path is an unanchored sequence of steps.
type Path []Step

// Then returns a new path with steps appended.
func (p Path) Then(steps ...Step) Path {
	return append(slices.Clip(p), steps...)
}

// Negate returns the inverse path: steps in reverse order, each negated.
func (p Path) Negate() Path {
	out := make(Path, len(p))
	for i, s := range p {
		out[len(p)-1-i] = s.Negate()
	}
	return out
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " / ")
}
