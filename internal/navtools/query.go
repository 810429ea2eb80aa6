package navtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
	"github.com/HendryAvila/notenav/internal/pathexpr"
	"github.com/HendryAvila/notenav/internal/store"
)

// ─── QueryTool ──────────────────────────────────────────────────────────────

// QueryTool handles the nav_query MCP tool.
type QueryTool struct {
	store      *store.Store
	source     navigate.Adjacency
	maxResults int
}

// NewQueryTool creates a QueryTool. Names resolve through store and
// navigation runs against source. maxResults caps every answer; 0 means
// no cap.
func NewQueryTool(store *store.Store, source navigate.Adjacency, maxResults int) *QueryTool {
	return &QueryTool{store: store, source: source, maxResults: maxResults}
}

// Definition returns the MCP tool definition for nav_query.
func (t *QueryTool) Definition() mcp.Tool {
	return mcp.NewTool("nav_query",
		mcp.WithDescription(
			"Navigate the graph: start at the anchor notes and follow the path, returning every note reached. "+
				"Paths are space-separated steps: types, instances, supertypes, subtypes, loopback, roles, "+
				"associations:<role>, players:<role>, traverse:<from>:<to>. "+
				"Prefix ~ to reverse a step, suffix + to follow it transitively, and append "+
				"[<path> has <note>] to keep only notes for which <path> reaches <note>. "+
				"Example: 'types supertypes+' lists every type of the anchors and all their ancestors.",
		),
		mcp.WithArray("anchors",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Names or ids of the starting notes, in order"),
		),
		mcp.WithString("path",
			mcp.Description("Path expression. Empty returns the anchors themselves."),
		),
		mcp.WithBoolean("with_paths",
			mcp.Description("If true, show the note reached at every hop for each result (default: false)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default and upper bound: the server's configured maximum)"),
		),
	)
}

// Handle processes the nav_query tool call.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	anchorNames := namesArg(req, "anchors")
	if len(anchorNames) == 0 {
		return mcp.NewToolResultError("'anchors' is required"), nil
	}
	expr := strings.TrimSpace(req.GetString("path", ""))

	out, err := t.Query(ctx, anchorNames, expr, boolArg(req, "with_paths", false), intArg(req, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

// Query resolves the anchors, parses expr and renders every note the path
// reaches as markdown. limit is clamped to the configured maximum.
func (t *QueryTool) Query(ctx context.Context, anchorNames []string, expr string, withPaths bool, limit int) (string, error) {
	anchors, err := resolveAll(t.store, anchorNames)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve anchors")
	}
	path, err := pathexpr.Parse(expr, t.store)
	if err != nil {
		return "", errors.Wrap(err, "invalid path")
	}

	res, err := t.run(ctx, navigate.From(anchors...).Then(path...).Query(), t.clampLimit(limit))
	if err != nil {
		logger.Logger.Warnw("navigation failed", "path", expr, "anchors", len(anchors), "error", err)
		return "", errors.Wrap(err, "navigation failed")
	}
	return t.format(anchorNames, path, res, withPaths), nil
}

// queryResult holds the drained leaves and their hop paths.
type queryResult struct {
	leaves    []note.Note
	paths     [][]note.Note
	truncated bool
	limit     int
}

func (t *QueryTool) clampLimit(requested int) int {
	switch {
	case requested <= 0:
		return t.maxResults
	case t.maxResults > 0 && requested > t.maxResults:
		return t.maxResults
	}
	return requested
}

// run drains the navigation, stopping after limit results or when ctx is
// done.
func (t *QueryTool) run(ctx context.Context, q navigate.Query, limit int) (*queryResult, error) {
	res := &queryResult{limit: limit}
	it := navigate.Of(t.source).Navigate(q).Iter()
	for it.Next() {
		if limit > 0 && len(res.leaves) == limit {
			res.truncated = true
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.leaves = append(res.leaves, it.Note())
		res.paths = append(res.paths, it.Path())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// format renders a query result as readable markdown.
func (t *QueryTool) format(anchorNames []string, path navigate.Path, res *queryResult, withPaths bool) string {
	var b strings.Builder

	rendered := pathexpr.Format(path, t.store)
	if rendered == "" {
		rendered = "(empty path)"
	}
	fmt.Fprintf(&b, "# Query: `%s`\n\n", rendered)
	fmt.Fprintf(&b, "**Anchors:** %s\n\n", strings.Join(anchorNames, ", "))

	if len(res.leaves) == 0 {
		b.WriteString("No notes reached.\n")
		return b.String()
	}

	for i, leaf := range res.leaves {
		if !withPaths {
			fmt.Fprintf(&b, "- %s\n", displayNote(t.store, leaf))
			continue
		}
		hops := make([]string, len(res.paths[i]))
		for j, n := range res.paths[i] {
			hops[j] = pathexpr.FormatNote(n, t.store)
		}
		fmt.Fprintf(&b, "- %s\n", strings.Join(hops, " → "))
	}

	fmt.Fprintf(&b, "\n**Results:** %d", len(res.leaves))
	if res.truncated {
		fmt.Fprintf(&b, " (truncated at limit %d)", res.limit)
	}
	b.WriteString("\n")
	return b.String()
}
