// Package prompts implements MCP prompt handlers for the note graph.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence of tool calls. Unlike tools
// (which the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplorePrompt handles the nav-explore MCP prompt.
// It walks the AI around one note: its types, its supertypes and whatever
// is typed by it.
type ExplorePrompt struct{}

// NewExplorePrompt creates an ExplorePrompt.
func NewExplorePrompt() *ExplorePrompt {
	return &ExplorePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ExplorePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("nav-explore",
		mcp.WithPromptDescription(
			"Explore the neighbourhood of one note: what it is, what it "+
				"specializes and which notes are instances of it.",
		),
		mcp.WithArgument("note",
			mcp.ArgumentDescription("Name or UUID of the note to explore"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the nav-explore prompt request.
func (p *ExplorePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := strings.TrimSpace(req.Params.Arguments["note"])
	if name == "" {
		return nil, fmt.Errorf("argument 'note' is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Explore note: %s", name),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Help me understand the note '%[1]s' in my graph.\n\n"+
						"Please:\n"+
						"1. Run `nav_query` with anchors=['%[1]s'] and path='types supertypes+' to see what it is\n"+
						"2. Run `nav_query` with anchors=['%[1]s'] and path='supertypes+' and with_paths=true to show where it sits in the hierarchy\n"+
						"3. Run `nav_query` with anchors=['%[1]s'] and path='subtypes+ instances' to list what is typed by it\n"+
						"4. Summarize the results as a short outline, and point out anything that looks misfiled",
					name,
				)),
			},
		},
	}, nil
}
