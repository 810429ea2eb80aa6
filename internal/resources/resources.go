// Package resources implements MCP resource handlers for the note graph.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (notenav://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/pathexpr"
	"github.com/HendryAvila/notenav/internal/store"
)

// Resource URIs.
const (
	NotesURI    = "notenav://graph/notes"
	BuiltinsURI = "notenav://graph/builtins"
)

// Handler manages graph resource endpoints.
type Handler struct {
	store *store.Store
	limit int
}

// NewHandler creates a resource Handler. limit caps the note listing;
// 0 lists every note.
func NewHandler(store *store.Store, limit int) *Handler {
	return &Handler{store: store, limit: limit}
}

// NotesResource returns the MCP resource definition for the note listing.
func (h *Handler) NotesResource() mcp.Resource {
	return mcp.NewResource(
		NotesURI,
		"Graph Notes",
		mcp.WithResourceDescription("Every stored note with its id and name, in creation order"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleNotes returns the stored notes as JSON.
func (h *Handler) HandleNotes(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	notes, err := h.store.ListNotes(h.limit)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if notes == nil {
		notes = []store.NoteRecord{}
	}
	return jsonResource(req.Params.URI, notes)
}

// BuiltinsResource returns the MCP resource definition for the built-in
// taxonomy.
func (h *Handler) BuiltinsResource() mcp.Resource {
	return mcp.NewResource(
		BuiltinsURI,
		"Built-in Taxonomy",
		mcp.WithResourceDescription("The fixed facts every graph starts with: which well-known notes are subtypes or instances of which"),
		mcp.WithMIMEType("application/json"),
	)
}

// builtinFact is one built-in triple with readable names.
type builtinFact struct {
	Source string `json:"source"`
	Axis   string `json:"axis"`
	Dest   string `json:"dest"`
}

// HandleBuiltins returns the built-in triples as JSON.
func (h *Handler) HandleBuiltins(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	triples := navigate.BuiltinTriples()
	facts := make([]builtinFact, len(triples))
	for i, t := range triples {
		facts[i] = builtinFact{
			Source: pathexpr.FormatNote(t.Source, pathexpr.Builtins{}),
			Axis:   t.Axis.String(),
			Dest:   pathexpr.FormatNote(t.Dest, pathexpr.Builtins{}),
		}
	}
	return jsonResource(req.Params.URI, facts)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
