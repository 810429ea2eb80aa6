package navtools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/store"
)

// ─── ExportTool ─────────────────────────────────────────────────────────────

// ExportTool handles the nav_export MCP tool.
type ExportTool struct {
	store *store.Store
}

// NewExportTool creates an ExportTool with the given graph store.
func NewExportTool(store *store.Store) *ExportTool {
	return &ExportTool{store: store}
}

// Definition returns the MCP tool definition for nav_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("nav_export",
		mcp.WithDescription(
			"Export every note and edge of the graph as JSON, for backup or for moving the graph "+
				"to another machine.",
		),
	)
}

// Handle processes the nav_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := t.store.Export()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to export graph: %v", err)), nil
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode export: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
