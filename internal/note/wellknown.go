package note

// Well-known notes. Their identifiers are fixed so every replica agrees on
// them without coordination.
var (
	Subject      = wellKnown(0x01)
	Topic        = wellKnown(0x02)
	Content      = wellKnown(0x03)
	Name         = wellKnown(0x04)
	Occurrence   = wellKnown(0x05)
	Association  = wellKnown(0x06)
	DataType     = wellKnown(0x07)
	DataTypeUTF8 = wellKnown(0x08)
	DataTypeNote = wellKnown(0x09)
	Type         = wellKnown(0x0a)
	Subtype      = wellKnown(0x0b)
	Supertype    = wellKnown(0x0c)
	Instance     = wellKnown(0x0d)
	RoleType     = wellKnown(0x0e)
)

var wellKnownNames = []struct {
	note Note
	name string
}{
	{Subject, "subject"},
	{Topic, "topic"},
	{Content, "content"},
	{Name, "name"},
	{Occurrence, "occurrence"},
	{Association, "association"},
	{DataType, "data-type"},
	{DataTypeUTF8, "data-type-utf8"},
	{DataTypeNote, "data-type-note"},
	{Type, "type"},
	{Subtype, "subtype"},
	{Supertype, "supertype"},
	{Instance, "instance"},
	{RoleType, "role-type"},
}

// 6e6f7465 is "note" in ASCII.
func wellKnown(seq byte) Note {
	n := MustParse("6e6f7465-0000-4000-8000-000000000000")
	n[15] = seq
	return n
}

// WellKnown returns every well-known note in declaration order.
func WellKnown() []Note {
	out := make([]Note, len(wellKnownNames))
	for i, wk := range wellKnownNames {
		out[i] = wk.note
	}
	return out
}

// WellKnownName returns the canonical name of a well-known note.
func WellKnownName(n Note) (string, bool) {
	for _, wk := range wellKnownNames {
		if wk.note == n {
			return wk.name, true
		}
	}
	return "", false
}

// ByWellKnownName looks a well-known note up by its canonical name.
func ByWellKnownName(name string) (Note, bool) {
	for _, wk := range wellKnownNames {
		if wk.name == name {
			return wk.note, true
		}
	}
	return Nil, false
}
