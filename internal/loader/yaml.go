// Package loader reads note graphs described in YAML files into a store.
package loader

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
)

// CurrentVersion is the file format version this loader writes and reads.
const CurrentVersion = "1"

// GraphYAML represents the YAML file structure
type GraphYAML struct {
	Version string       `yaml:"version"`
	Notes   []NoteYAML   `yaml:"notes,omitempty"`
	Triples []TripleYAML `yaml:"triples,omitempty"`
}

// NoteYAML declares a named note.
type NoteYAML struct {
	Name string `yaml:"name"`
}

// TripleYAML is one edge. Notes are referenced by name, well-known name or
// literal UUID. Role only applies to the associations axis and defaults to
// topic.
type TripleYAML struct {
	Source string `yaml:"source"`
	Axis   string `yaml:"axis"`
	Role   string `yaml:"role,omitempty"`
	Dest   string `yaml:"dest"`
}

// Target is what Apply writes into. *store.Store satisfies it.
type Target interface {
	CreateNote(name string) (note.Note, error)
	ResolveName(name string) (note.Note, error)
	AddTriples(triples []navigate.Triple) (int, error)
}

// Result counts what Apply changed.
type Result struct {
	NotesCreated int `json:"notes_created"`
	TriplesAdded int `json:"triples_added"`
}

// LoadFile reads and parses a graph file.
func LoadFile(path string) (*GraphYAML, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a graph document. Unknown keys are rejected.
func Parse(r io.Reader) (*GraphYAML, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var g GraphYAML
	if err := dec.Decode(&g); err != nil {
		if errors.Is(err, io.EOF) {
			return &GraphYAML{Version: CurrentVersion}, nil
		}
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if g.Version != "" && g.Version != CurrentVersion {
		return nil, errors.Newf("unsupported graph file version %q", g.Version)
	}
	return &g, nil
}

// Apply creates the declared notes that do not resolve yet, then stores
// every triple in one batch. Entries are validated before the batch is
// written; errors name the offending entry by index.
func Apply(t Target, g *GraphYAML) (*Result, error) {
	res := &Result{}

	for i, n := range g.Notes {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return nil, errors.Newf("note %d: empty name", i)
		}
		if _, err := t.ResolveName(name); err == nil {
			continue
		}
		if _, err := t.CreateNote(name); err != nil {
			return nil, errors.Wrapf(err, "note %d", i)
		}
		res.NotesCreated++
	}

	triples := make([]navigate.Triple, 0, len(g.Triples))
	for i, ty := range g.Triples {
		tr, err := convertTriple(t, ty)
		if err != nil {
			return nil, errors.Wrapf(err, "triple %d", i)
		}
		triples = append(triples, tr)
	}

	added, err := t.AddTriples(triples)
	if err != nil {
		return nil, err
	}
	res.TriplesAdded = added

	logger.Logger.Infow("graph file applied",
		"notes_created", res.NotesCreated,
		"triples", len(triples),
		"triples_added", added)
	return res, nil
}

// convertTriple resolves names and maps the axis. The reverse spellings
// instances and subtypes are stored as the swapped forward edge.
func convertTriple(t Target, ty TripleYAML) (navigate.Triple, error) {
	src, err := resolve(t, "source", ty.Source)
	if err != nil {
		return navigate.Triple{}, err
	}
	dst, err := resolve(t, "dest", ty.Dest)
	if err != nil {
		return navigate.Triple{}, err
	}

	axis := strings.ToLower(strings.TrimSpace(ty.Axis))
	if axis != "associations" && ty.Role != "" {
		return navigate.Triple{}, errors.Newf("role is only valid for associations, got axis %q", ty.Axis)
	}

	switch axis {
	case "types":
		return navigate.Triple{Source: src, Axis: navigate.AxisTypes(), Dest: dst}, nil
	case "instances":
		return navigate.Triple{Source: dst, Axis: navigate.AxisTypes(), Dest: src}, nil
	case "supertypes":
		return navigate.Triple{Source: src, Axis: navigate.AxisSupertypes(), Dest: dst}, nil
	case "subtypes":
		return navigate.Triple{Source: dst, Axis: navigate.AxisSupertypes(), Dest: src}, nil
	case "roles":
		return navigate.Triple{Source: src, Axis: navigate.AxisRoles(), Dest: dst}, nil
	case "associations":
		role := note.Topic
		if ty.Role != "" {
			if role, err = resolve(t, "role", ty.Role); err != nil {
				return navigate.Triple{}, err
			}
		}
		return navigate.Triple{Source: src, Axis: navigate.AxisAssociations(role), Dest: dst}, nil
	}
	return navigate.Triple{}, errors.Newf("unknown axis %q", ty.Axis)
}

func resolve(t Target, field, name string) (note.Note, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return note.Nil, errors.Newf("%s: empty name", field)
	}
	n, err := t.ResolveName(name)
	if err != nil {
		return note.Nil, errors.Wrapf(err, "%s %q", field, name)
	}
	return n, nil
}
