package navtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/pathexpr"
	"github.com/HendryAvila/notenav/internal/store"
)

// ─── RelateTool ─────────────────────────────────────────────────────────────

// RelateTool handles the nav_relate MCP tool.
type RelateTool struct {
	store *store.Store
}

// NewRelateTool creates a RelateTool with the given graph store.
func NewRelateTool(store *store.Store) *RelateTool {
	return &RelateTool{store: store}
}

// Definition returns the MCP tool definition for nav_relate.
func (t *RelateTool) Definition() mcp.Tool {
	return mcp.NewTool("nav_relate",
		mcp.WithDescription(
			"Connect notes: afterwards, stepping along 'step' from any source reaches every destination. "+
				"Every source is connected to every destination. "+
				"Steps: types, instances, supertypes, subtypes, roles, associations:<role>, players:<role>, "+
				"traverse:instance:type and the other hierarchy-shaped traverse forms.",
		),
		mcp.WithArray("sources",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Names or ids of the source notes"),
		),
		mcp.WithString("step",
			mcp.Required(),
			mcp.Description("A single direct step, e.g. 'types' or 'associations:topic'"),
		),
		mcp.WithArray("destinations",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Names or ids of the destination notes"),
		),
	)
}

// Handle processes the nav_relate tool call.
func (t *RelateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceNames := namesArg(req, "sources")
	if len(sourceNames) == 0 {
		return mcp.NewToolResultError("'sources' is required"), nil
	}
	destNames := namesArg(req, "destinations")
	if len(destNames) == 0 {
		return mcp.NewToolResultError("'destinations' is required"), nil
	}
	expr := strings.TrimSpace(req.GetString("step", ""))
	if expr == "" {
		return mcp.NewToolResultError("'step' is required"), nil
	}

	path, err := pathexpr.Parse(expr, t.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid step: %v", err)), nil
	}
	if len(path) != 1 || path[0].IsTransitive() || len(path[0].Predicates()) > 0 {
		return mcp.NewToolResultError("'step' must be exactly one direct step without predicates"), nil
	}

	sources, err := resolveAll(t.store, sourceNames)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve sources: %v", err)), nil
	}
	dests, err := resolveAll(t.store, destNames)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve destinations: %v", err)), nil
	}

	ids, err := t.store.PushAdjacentNotes(sources, path[0], dests)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to relate notes: %v", err)), nil
	}

	pairs := len(sources) * len(dests)
	var b strings.Builder
	fmt.Fprintf(&b, "Related %d source(s) to %d destination(s) along %s\n", len(sources), len(dests), expr)
	fmt.Fprintf(&b, "Edges added: %d", len(ids))
	if skipped := pairs - len(ids); skipped > 0 {
		fmt.Fprintf(&b, " (%d already existed)", skipped)
	}
	if len(ids) > 0 {
		strIDs := make([]string, len(ids))
		for i, id := range ids {
			strIDs[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&b, "\nEdge IDs: %s", strings.Join(strIDs, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── UnrelateTool ───────────────────────────────────────────────────────────

// UnrelateTool handles the nav_unrelate MCP tool.
type UnrelateTool struct {
	store *store.Store
}

// NewUnrelateTool creates an UnrelateTool with the given graph store.
func NewUnrelateTool(store *store.Store) *UnrelateTool {
	return &UnrelateTool{store: store}
}

// Definition returns the MCP tool definition for nav_unrelate.
func (t *UnrelateTool) Definition() mcp.Tool {
	return mcp.NewTool("nav_unrelate",
		mcp.WithDescription(
			"Remove an edge by id. nav_relate reports the ids of the edges it adds.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Edge ID to remove"),
		),
	)
}

// Handle processes the nav_unrelate tool call.
func (t *UnrelateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	if err := t.store.RemoveEdge(int64(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove edge: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Edge #%d removed", id)), nil
}
