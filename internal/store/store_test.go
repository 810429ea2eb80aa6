package store_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
	"github.com/HendryAvila/notenav/internal/store"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *store.Store, name string) note.Note {
	t.Helper()
	n, err := s.CreateNote(name)
	require.NoError(t, err)
	return n
}

func collect(t *testing.T, src navigate.Adjacency, ap navigate.AnchoredPath) []note.Note {
	t.Helper()
	got, err := navigate.Of(src).Navigate(ap.Query()).Collect()
	require.NoError(t, err)
	return got
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := store.New(store.Config{DataDir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "graph.db"))
	assert.NoError(t, err)
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := store.New(store.Config{DataDir: dir})
	require.NoError(t, err)
	alice := mustCreate(t, s1, "alice")
	require.NoError(t, s1.Close())

	s2, err := store.New(store.Config{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.ResolveName("alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestNew_OpenFailure(t *testing.T) {
	restore := store.SetOpenDB(func(string, string) (*sql.DB, error) {
		return nil, errors.New("disk on fire")
	})
	defer restore()

	_, err := store.New(store.Config{DataDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestNew_WALMode(t *testing.T) {
	s := newTestStore(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, ".notenav", filepath.Base(store.DefaultConfig().DataDir))
}

// ─── Notes ──────────────────────────────────────────────────────────────────

func TestCreateNote_GetAndResolve(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreate(t, s, "alice")

	rec, err := s.GetNote(alice)
	require.NoError(t, err)
	assert.Equal(t, alice, rec.ID)
	assert.Equal(t, "alice", rec.Name)
	assert.NotEmpty(t, rec.CreatedAt)

	got, err := s.ResolveName("alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	name, ok := s.NameOf(alice)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
}

func TestCreateNote_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "alice")

	_, err := s.CreateNote("alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateNote_ReservedName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateNote("topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestCreateNote_AnonymousNotesAreDistinct(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "")
	b := mustCreate(t, s, "")
	assert.NotEqual(t, a, b)

	_, ok := s.NameOf(a)
	assert.False(t, ok)
}

func TestGetNote_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetNote(note.New())
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestResolveName_Fallbacks(t *testing.T) {
	s := newTestStore(t)

	got, err := s.ResolveName("supertype")
	require.NoError(t, err)
	assert.Equal(t, note.Supertype, got)

	literal := note.New()
	got, err = s.ResolveName(literal.String())
	require.NoError(t, err)
	assert.Equal(t, literal, got)

	_, err = s.ResolveName("nobody")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestNameOf_WellKnown(t *testing.T) {
	s := newTestStore(t)
	name, ok := s.NameOf(note.Content)
	assert.True(t, ok)
	assert.Equal(t, "content", name)
}

func TestListNotes_OrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")
	c := mustCreate(t, s, "c")

	all, err := s.ListNotes(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []note.Note{a, b, c}, []note.Note{all[0].ID, all[1].ID, all[2].ID})

	two, err := s.ListNotes(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

// ─── Edges / Adjacency ──────────────────────────────────────────────────────

func TestPushAdjacentNotes_Cartesian(t *testing.T) {
	s := newTestStore(t)
	s1, s2 := mustCreate(t, s, "s1"), mustCreate(t, s, "s2")
	d1, d2 := mustCreate(t, s, "d1"), mustCreate(t, s, "d2")

	ids, err := s.PushAdjacentNotes([]note.Note{s1, s2}, navigate.Supertypes(), []note.Note{d1, d2})
	require.NoError(t, err)
	assert.Len(t, ids, 4)

	assert.Equal(t, []note.Note{d1, d2}, collect(t, s, navigate.From(s1).Supertypes()))
	assert.Equal(t, []note.Note{d1, d2}, collect(t, s, navigate.From(s2).Supertypes()))
	assert.Equal(t, []note.Note{s1, s2}, collect(t, s, navigate.From(d2).Subtypes()))
}

func TestPushAdjacentNotes_ReverseStoresInvertedEdge(t *testing.T) {
	s := newTestStore(t)
	person, alice := mustCreate(t, s, "person"), mustCreate(t, s, "alice")

	_, err := s.PushAdjacentNotes([]note.Note{person}, navigate.Instances(), []note.Note{alice})
	require.NoError(t, err)

	assert.Equal(t, []note.Note{person}, collect(t, s, navigate.From(alice).Types()))

	edges, err := s.Edges(alice)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, alice, edges[0].Source)
	assert.Equal(t, "types", edges[0].Axis)
	assert.Equal(t, person, edges[0].Dest)
}

func TestPushAdjacentNotes_DuplicatesIgnored(t *testing.T) {
	s := newTestStore(t)
	a, b := mustCreate(t, s, "a"), mustCreate(t, s, "b")

	ids, err := s.PushAdjacentNotes([]note.Note{a}, navigate.Types(), []note.Note{b})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	ids, err = s.PushAdjacentNotes([]note.Note{a}, navigate.Types(), []note.Note{b, b})
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, []note.Note{b}, collect(t, s, navigate.From(a).Types()))
}

func TestPushAdjacentNotes_RegistersUnknownEndpoints(t *testing.T) {
	s := newTestStore(t)
	stranger := note.New()

	_, err := s.PushAdjacentNotes([]note.Note{stranger}, navigate.Types(), []note.Note{note.Topic})
	require.NoError(t, err)

	_, err = s.GetNote(stranger)
	require.NoError(t, err)
	rec, err := s.GetNote(note.Topic)
	require.NoError(t, err)
	assert.Equal(t, "topic", rec.Name)
}

func TestPushAdjacentNotes_Unsupported(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "a")

	for _, step := range []navigate.Step{navigate.Loopback(), navigate.Traverse(note.Topic, note.Name)} {
		_, err := s.PushAdjacentNotes([]note.Note{a}, step, []note.Note{a})
		assert.True(t, navigate.IsUnsupported(err), step.String())

		_, err = s.Adjacent(a, step.Axis(), step.Direction())
		assert.True(t, navigate.IsUnsupported(err), step.String())
	}
}

func TestAdjacent_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "a")
	z, m, b := mustCreate(t, s, "z"), mustCreate(t, s, "m"), mustCreate(t, s, "b")

	for _, dst := range []note.Note{z, m, b} {
		_, err := s.PushAdjacentNotes([]note.Note{a}, navigate.Supertypes(), []note.Note{dst})
		require.NoError(t, err)
	}

	first, err := s.Adjacent(a, navigate.AxisSupertypes(), navigate.Forward)
	require.NoError(t, err)
	second, err := s.Adjacent(a, navigate.AxisSupertypes(), navigate.Forward)
	require.NoError(t, err)
	assert.Equal(t, []note.Note{z, m, b}, first)
	assert.Equal(t, first, second)
}

func TestAdjacent_TraverseSimplified(t *testing.T) {
	s := newTestStore(t)
	person, alice := mustCreate(t, s, "person"), mustCreate(t, s, "alice")
	_, err := s.PushAdjacentNotes([]note.Note{alice}, navigate.Types(), []note.Note{person})
	require.NoError(t, err)

	assert.Equal(t, []note.Note{person},
		collect(t, s, navigate.From(alice).Traverse(note.Instance, note.Type)))
	assert.Equal(t, []note.Note{alice},
		collect(t, s, navigate.From(person).Traverse(note.Type, note.Instance)))
}

func TestAdjacent_AssociationsPerRole(t *testing.T) {
	s := newTestStore(t)
	knows := mustCreate(t, s, "knows-1")
	alice, bob := mustCreate(t, s, "alice"), mustCreate(t, s, "bob")
	friend := mustCreate(t, s, "friend")

	_, err := s.PushAdjacentNotes([]note.Note{knows}, navigate.Associations(note.Topic), []note.Note{alice})
	require.NoError(t, err)
	_, err = s.PushAdjacentNotes([]note.Note{knows}, navigate.Associations(friend), []note.Note{bob})
	require.NoError(t, err)

	assert.Equal(t, []note.Note{alice}, collect(t, s, navigate.From(knows).Then(navigate.Associations(note.Topic))))
	assert.Equal(t, []note.Note{bob}, collect(t, s, navigate.From(knows).Then(navigate.Associations(friend))))
	assert.Equal(t, []note.Note{knows}, collect(t, s, navigate.From(bob).Then(navigate.Players(friend))))
}

func TestNavigate_TransitiveCycleOverStore(t *testing.T) {
	s := newTestStore(t)
	a, b, c, d := mustCreate(t, s, "a"), mustCreate(t, s, "b"), mustCreate(t, s, "c"), mustCreate(t, s, "d")

	_, err := s.AddTriples([]navigate.Triple{
		{Source: a, Axis: navigate.AxisSupertypes(), Dest: b},
		{Source: b, Axis: navigate.AxisSupertypes(), Dest: c},
		{Source: c, Axis: navigate.AxisSupertypes(), Dest: d},
		{Source: d, Axis: navigate.AxisSupertypes(), Dest: b},
	})
	require.NoError(t, err)

	assert.Equal(t, []note.Note{b, c, d}, collect(t, s, navigate.From(a).SupertypesTransitive()))
}

func TestNavigate_ChainedWithBuiltins(t *testing.T) {
	s := newTestStore(t)
	person, alice := mustCreate(t, s, "person"), mustCreate(t, s, "alice")

	_, err := s.AddTriples([]navigate.Triple{
		{Source: alice, Axis: navigate.AxisTypes(), Dest: person},
		{Source: person, Axis: navigate.AxisSupertypes(), Dest: note.Topic},
	})
	require.NoError(t, err)

	src := navigate.Of(s).Chain(navigate.BuiltinTypes{})
	got := collect(t, src, navigate.From(alice).Types().SupertypesTransitive())
	assert.Equal(t, []note.Note{note.Topic, note.Subject}, got)
}

func TestAddTriples_RollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)
	a, b := mustCreate(t, s, "a"), mustCreate(t, s, "b")

	_, err := s.AddTriples([]navigate.Triple{
		{Source: a, Axis: navigate.AxisTypes(), Dest: b},
		{Source: a, Axis: navigate.AxisLoopback(), Dest: b},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triple 1")
	assert.Empty(t, collect(t, s, navigate.From(a).Types()))
}

func TestRemoveEdge(t *testing.T) {
	s := newTestStore(t)
	a, b := mustCreate(t, s, "a"), mustCreate(t, s, "b")
	ids, err := s.PushAdjacentNotes([]note.Note{a}, navigate.Types(), []note.Note{b})
	require.NoError(t, err)

	require.NoError(t, s.RemoveEdge(ids[0]))
	assert.Empty(t, collect(t, s, navigate.From(a).Types()))

	err = s.RemoveEdge(ids[0])
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestEdges_BothEnds(t *testing.T) {
	s := newTestStore(t)
	a, b, c := mustCreate(t, s, "a"), mustCreate(t, s, "b"), mustCreate(t, s, "c")
	_, err := s.AddTriples([]navigate.Triple{
		{Source: a, Axis: navigate.AxisTypes(), Dest: b},
		{Source: b, Axis: navigate.AxisSupertypes(), Dest: c},
		{Source: a, Axis: navigate.AxisRoles(), Dest: c},
	})
	require.NoError(t, err)

	edges, err := s.Edges(b)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "types", edges[0].Axis)
	assert.Equal(t, "supertypes", edges[1].Axis)
}

// ─── Builtins ───────────────────────────────────────────────────────────────

func TestSeedBuiltins_Idempotent(t *testing.T) {
	s := newTestStore(t)

	added, err := s.SeedBuiltins()
	require.NoError(t, err)
	assert.Equal(t, len(navigate.BuiltinTriples()), added)

	added, err = s.SeedBuiltins()
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestSeedBuiltins_MatchesBuiltinTypes(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SeedBuiltins()
	require.NoError(t, err)

	steps := []navigate.Step{navigate.Types(), navigate.Instances(), navigate.Supertypes(), navigate.Subtypes()}
	for _, n := range note.WellKnown() {
		for _, step := range steps {
			want := collect(t, navigate.BuiltinTypes{}, navigate.From(n).Then(step))
			got := collect(t, s, navigate.From(n).Then(step))
			assert.Equal(t, want, got, "%s from %s", step, n)
		}
	}
}

// ─── Export / Import ────────────────────────────────────────────────────────

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestStore(t)
	alice, person := mustCreate(t, src, "alice"), mustCreate(t, src, "person")
	_, err := src.AddTriples([]navigate.Triple{
		{Source: alice, Axis: navigate.AxisTypes(), Dest: person},
		{Source: alice, Axis: navigate.AxisAssociations(note.Topic), Dest: person},
	})
	require.NoError(t, err)

	data, err := src.Export()
	require.NoError(t, err)
	assert.Len(t, data.Notes, 2)
	assert.Len(t, data.Edges, 2)

	dst := newTestStore(t)
	res, err := dst.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NotesImported)
	assert.Equal(t, 2, res.EdgesImported)

	got, err := dst.ResolveName("alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Equal(t, []note.Note{person}, collect(t, dst, navigate.From(alice).Types()))

	res, err = dst.Import(data)
	require.NoError(t, err)
	assert.Zero(t, res.NotesImported)
	assert.Zero(t, res.EdgesImported)
}

func TestImport_RejectsBadInput(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Import(&store.ExportData{Version: "99"})
	assert.Error(t, err)

	_, err = s.Import(&store.ExportData{Edges: []store.EdgeRecord{
		{Source: note.New(), Axis: "loopback", Dest: note.New()},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import edge 0")
}

func TestParseAxis(t *testing.T) {
	ax, err := store.ParseAxis("associations", note.Topic.String())
	require.NoError(t, err)
	assert.Equal(t, navigate.AxisAssociations(note.Topic), ax)

	_, err = store.ParseAxis("associations", "not-a-uuid")
	assert.Error(t, err)
	_, err = store.ParseAxis("sideways", "")
	assert.Error(t, err)
}

// ─── Failure injection ──────────────────────────────────────────────────────

func TestPushAdjacentNotes_CommitFailure(t *testing.T) {
	s := newTestStore(t)
	a, b := mustCreate(t, s, "a"), mustCreate(t, s, "b")
	store.FailCommit(s, errors.New("commit refused"))

	_, err := s.PushAdjacentNotes([]note.Note{a}, navigate.Types(), []note.Note{b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit refused")
	assert.Empty(t, collect(t, s, navigate.From(a).Types()))
}

func TestPushAdjacentNotes_InsertFailure(t *testing.T) {
	s := newTestStore(t)
	a, b := mustCreate(t, s, "a"), mustCreate(t, s, "b")
	store.FailExecContaining(s, "INTO edges", errors.New("no space"))

	_, err := s.PushAdjacentNotes([]note.Note{a}, navigate.Types(), []note.Note{b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space")
}

func TestAdjacent_QueryFailureStopsNavigation(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "a")
	store.FailQuery(s, errors.New("locked"))

	it := navigate.Of(s).Navigate(navigate.From(a).Types().Query()).Iter()
	assert.False(t, it.Next())
	require.Error(t, it.Err())
	assert.Contains(t, it.Err().Error(), "locked")
}
