// Package navtools provides MCP tool handlers for the note graph.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (store.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Failures are reported as tool-error results, never as Go errors.
package navtools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
	"github.com/HendryAvila/notenav/internal/pathexpr"
	"github.com/HendryAvila/notenav/internal/store"
)

// QuerySource returns the backend queries run against. A store that holds
// the built-in taxonomy answers alone; otherwise the built-in facts are
// chained after it. Always is chained last so loopback steps, and the
// predicates they carry, test the current note.
func QuerySource(st *store.Store, builtinsSeeded bool) navigate.Adjacency {
	var source navigate.Adjacency = st
	if !builtinsSeeded {
		source = navigate.Chain{First: st, Second: navigate.BuiltinTypes{}}
	}
	return navigate.Chain{First: source, Second: navigate.Always{}}
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// namesArg reads a list of note names. A single string is accepted as a
// one-element list.
func namesArg(req mcp.CallToolRequest, key string) []string {
	if s, ok := req.GetArguments()[key].(string); ok {
		return []string{s}
	}
	var out []string
	for _, name := range req.GetStringSlice(key, nil) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// resolveAll resolves names in order.
func resolveAll(r pathexpr.Resolver, names []string) ([]note.Note, error) {
	out := make([]note.Note, 0, len(names))
	for _, name := range names {
		n, err := r.ResolveName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// displayNote renders a note as "name (uuid)", or just the UUID when it has
// no name.
func displayNote(namer pathexpr.Namer, n note.Note) string {
	if name, ok := namer.NameOf(n); ok {
		return name + " (" + n.String() + ")"
	}
	return n.String()
}
