package pathexpr

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
)

// Format renders path in the form Parse reads. Notes without a name are
// written as UUIDs. A nil namer names nothing.
func Format(path navigate.Path, namer Namer) string {
	words := make([]string, 0, len(path))
	for _, s := range path {
		words = append(words, formatStep(s, namer))
	}
	return strings.Join(words, " ")
}

// FormatNote renders a single note the way Format does.
func FormatNote(n note.Note, namer Namer) string {
	if namer != nil {
		if name, ok := namer.NameOf(n); ok {
			return name
		}
	}
	return n.String()
}

func formatStep(s navigate.Step, namer Namer) string {
	var b strings.Builder
	axis, reverse := s.Axis(), s.Direction() == navigate.Reverse

	switch axis.Kind {
	case navigate.KindTypes:
		b.WriteString(pick(reverse, "instances", "types"))
	case navigate.KindSupertypes:
		b.WriteString(pick(reverse, "subtypes", "supertypes"))
	case navigate.KindAssociations:
		b.WriteString(pick(reverse, "players:", "associations:"))
		b.WriteString(quoteName(FormatNote(axis.Role, namer)))
	case navigate.KindTraverse:
		b.WriteString(pick(reverse, "~", ""))
		b.WriteString("traverse:")
		b.WriteString(quoteName(FormatNote(axis.FromRole, namer)))
		b.WriteString(":")
		b.WriteString(quoteName(FormatNote(axis.ToRole, namer)))
	case navigate.KindLoopback:
		b.WriteString(pick(reverse, "~loopback", "loopback"))
	case navigate.KindRoles:
		b.WriteString(pick(reverse, "~roles", "roles"))
	}
	if s.IsTransitive() {
		b.WriteString("+")
	}
	for _, pred := range s.Predicates() {
		b.WriteString(formatPredicate(pred, namer))
	}
	return b.String()
}

func formatPredicate(p navigate.Predicate, namer Namer) string {
	inner := Format(p.Path(), namer)
	if inner != "" {
		inner += " "
	}
	return "[" + inner + hasKeyword + " " + quoteName(FormatNote(p.Membership().Required(), namer)) + "]"
}

// quoteName quotes a name only when splitting would otherwise break it up.
func quoteName(name string) string {
	if strings.ContainsAny(name, " \t\n'\"\\") {
		return shellquote.Join(name)
	}
	return name
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
