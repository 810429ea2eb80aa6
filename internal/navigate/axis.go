package navigate

import (
	"fmt"

	"github.com/HendryAvila/notenav/internal/note"
)

// AxisKind enumerates the relationship kinds a step may follow.
type AxisKind uint8

const (
	KindLoopback AxisKind = iota
	KindTypes
	KindSupertypes
	KindAssociations
	KindRoles
	KindTraverse
)

var axisKindNames = [...]string{
	KindLoopback:     "loopback",
	KindTypes:        "types",
	KindSupertypes:   "supertypes",
	KindAssociations: "associations",
	KindRoles:        "roles",
	KindTraverse:     "traverse",
}

func (k AxisKind) String() string {
	if int(k) < len(axisKindNames) {
		return axisKindNames[k]
	}
	return fmt.Sprintf("AxisKind(%d)", uint8(k))
}

// Axis is a relationship kind. Associations carries the role played by the
// source note; Traverse carries the role the source plays and the role of
// the notes reached. Axis values are comparable with ==.
type Axis struct {
	Kind     AxisKind
	Role     note.Note
	FromRole note.Note
	ToRole   note.Note
}

// AxisLoopback relates every note to itself.
func AxisLoopback() Axis { return Axis{Kind: KindLoopback} }

// AxisTypes relates an instance to its types.
func AxisTypes() Axis { return Axis{Kind: KindTypes} }

// AxisSupertypes relates a type to its direct supertypes.
func AxisSupertypes() Axis { return Axis{Kind: KindSupertypes} }

// AxisAssociations relates a player to the associations in which it plays role.
func AxisAssociations(role note.Note) Axis {
	return Axis{Kind: KindAssociations, Role: role}
}

// AxisRoles relates an association to its roles.
func AxisRoles() Axis { return Axis{Kind: KindRoles} }

// AxisTraverse relates a note playing fromRole in an association to the
// notes playing toRole in that same association.
func AxisTraverse(fromRole, toRole note.Note) Axis {
	return Axis{Kind: KindTraverse, FromRole: fromRole, ToRole: toRole}
}

func (a Axis) String() string {
	switch a.Kind {
	case KindAssociations:
		return fmt.Sprintf("associations(%s)", a.Role)
	case KindTraverse:
		return fmt.Sprintf("traverse(%s,%s)", a.FromRole, a.ToRole)
	default:
		return a.Kind.String()
	}
}

// Direction selects the relation as defined (Forward) or its inverse.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

// Negate swaps Forward and Reverse.
func (d Direction) Negate() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}
