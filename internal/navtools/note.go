package navtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/store"
)

// ─── NoteTool ───────────────────────────────────────────────────────────────

// NoteTool handles the nav_note MCP tool.
type NoteTool struct {
	store *store.Store
}

// NewNoteTool creates a NoteTool with the given graph store.
func NewNoteTool(store *store.Store) *NoteTool {
	return &NoteTool{store: store}
}

// Definition returns the MCP tool definition for nav_note.
func (t *NoteTool) Definition() mcp.Tool {
	return mcp.NewTool("nav_note",
		mcp.WithDescription(
			"Create a note in the graph. Notes are the nodes every relation connects. "+
				"Give it a unique name so later calls can refer to it; omit the name for an anonymous note "+
				"(such as an association instance) that is referred to by its id.",
		),
		mcp.WithString("name",
			mcp.Description("Unique name for the note. Well-known names like 'topic' or 'subject' are reserved."),
		),
	)
}

// Handle processes the nav_note tool call.
func (t *NoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))

	n, err := t.store.CreateNote(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create note: %v", err)), nil
	}

	if name == "" {
		return mcp.NewToolResultText(fmt.Sprintf("Anonymous note created\nID: %s", n)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note %q created\nID: %s", name, n)), nil
}
