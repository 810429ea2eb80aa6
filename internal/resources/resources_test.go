package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(store.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func text(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	return tc.Text
}

func TestDefinitions(t *testing.T) {
	h := NewHandler(newTestStore(t), 0)
	assert.Equal(t, NotesURI, h.NotesResource().URI)
	assert.Equal(t, BuiltinsURI, h.BuiltinsResource().URI)
}

func TestHandleNotes(t *testing.T) {
	st := newTestStore(t)
	h := NewHandler(st, 1)

	contents, err := h.HandleNotes(context.Background(), readReq(NotesURI))
	require.NoError(t, err)
	assert.Equal(t, "[]", text(t, contents))

	_, err = st.CreateNote("alice")
	require.NoError(t, err)
	_, err = st.CreateNote("bob")
	require.NoError(t, err)

	contents, err = h.HandleNotes(context.Background(), readReq(NotesURI))
	require.NoError(t, err)

	var notes []store.NoteRecord
	require.NoError(t, json.Unmarshal([]byte(text(t, contents)), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "alice", notes[0].Name)
}

func TestHandleNotes_StoreClosed(t *testing.T) {
	st, err := store.New(store.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	contents, err := NewHandler(st, 0).HandleNotes(context.Background(), readReq(NotesURI))
	require.NoError(t, err)
	assert.Contains(t, text(t, contents), "Error:")
}

func TestHandleBuiltins(t *testing.T) {
	h := NewHandler(newTestStore(t), 0)
	contents, err := h.HandleBuiltins(context.Background(), readReq(BuiltinsURI))
	require.NoError(t, err)

	var facts []builtinFact
	require.NoError(t, json.Unmarshal([]byte(text(t, contents)), &facts))
	require.Len(t, facts, len(navigate.BuiltinTriples()))
	assert.Equal(t, builtinFact{Source: "name", Axis: "supertypes", Dest: "content"}, facts[0])
}
