package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// OverviewPrompt handles the nav-overview MCP prompt.
type OverviewPrompt struct{}

// NewOverviewPrompt creates an OverviewPrompt.
func NewOverviewPrompt() *OverviewPrompt {
	return &OverviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *OverviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("nav-overview",
		mcp.WithPromptDescription(
			"Summarize the whole note graph: which notes exist and how "+
				"they are organized into types.",
		),
	)
}

// Handle processes the nav-overview prompt request.
func (p *OverviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Note Graph Overview",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the `notenav://graph/notes` resource to see my notes.\n\n" +
						"Then:\n" +
						"1. Run `nav_query` with anchors=['topic'] and path='instances' to find the notes used as types\n" +
						"2. For each of those, run `nav_query` with path='subtypes+ instances' to count its members\n" +
						"3. Present the hierarchy as an indented tree\n" +
						"4. List any notes that have no type at all",
				),
			},
		},
	}, nil
}
