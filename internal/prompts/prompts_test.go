package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.RoleUser, res.Messages[0].Role)
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestExplorePrompt(t *testing.T) {
	p := NewExplorePrompt()
	def := p.Definition()
	assert.Equal(t, "nav-explore", def.Name)
	require.Len(t, def.Arguments, 1)
	assert.True(t, def.Arguments[0].Required)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"note": " rock "}
	res, err := p.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Explore note: rock", res.Description)
	text := promptText(t, res)
	assert.Contains(t, text, "anchors=['rock']")
	assert.Contains(t, text, "nav_query")
}

func TestExplorePrompt_MissingNote(t *testing.T) {
	_, err := NewExplorePrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	require.Error(t, err)
}

func TestOverviewPrompt(t *testing.T) {
	p := NewOverviewPrompt()
	assert.Equal(t, "nav-overview", p.Definition().Name)

	res, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "notenav://graph/notes")
}
