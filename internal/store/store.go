// Package store persists the note graph in SQLite and answers navigation
// adjacency queries straight from it.
//
// Notes live in the notes table, optionally named. Every relationship is a
// row in edges keyed by (source, axis, role, dest), so the same store can
// serve types, supertypes, associations for any role, and roles. Adjacent
// returns rows in insertion order.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned for missing notes, names and edges.
var ErrNotFound = errors.New("not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// NoteRecord is one row of the notes table.
type NoteRecord struct {
	ID        note.Note `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// EdgeRecord is one stored edge. Role is only set for associations.
type EdgeRecord struct {
	ID        int64     `json:"id"`
	Source    note.Note `json:"source"`
	Axis      string    `json:"axis"`
	Role      string    `json:"role,omitempty"`
	Dest      note.Note `json:"dest"`
	CreatedAt string    `json:"created_at"`
}

// ExportData is the serializable dump of the whole graph.
type ExportData struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Notes      []NoteRecord `json:"notes"`
	Edges      []EdgeRecord `json:"edges"`
}

// ImportResult counts the rows Import actually added.
type ImportResult struct {
	NotesImported int `json:"notes_imported"`
	EdgesImported int `json:"edges_imported"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".notenav"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed note graph. It implements navigate.Adjacency.
type Store struct {
	db    *sql.DB
	cfg   Config
	hooks storeHooks
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

type storeHooks struct {
	exec    func(db execer, query string, args ...any) (sql.Result, error)
	query   func(db queryer, query string, args ...any) (*sql.Rows, error)
	beginTx func(db *sql.DB) (*sql.Tx, error)
	commit  func(tx *sql.Tx) error
}

func (s *Store) execHook(db execer, query string, args ...any) (sql.Result, error) {
	if s.hooks.exec != nil {
		return s.hooks.exec(db, query, args...)
	}
	return db.Exec(query, args...)
}

func (s *Store) queryHook(db queryer, query string, args ...any) (*sql.Rows, error) {
	if s.hooks.query != nil {
		return s.hooks.query(db, query, args...)
	}
	return db.Query(query, args...)
}

func (s *Store) beginTxHook() (*sql.Tx, error) {
	if s.hooks.beginTx != nil {
		return s.hooks.beginTx(s.db)
	}
	return s.db.Begin()
}

func (s *Store) commitHook(tx *sql.Tx) error {
	if s.hooks.commit != nil {
		return s.hooks.commit(tx)
	}
	return tx.Commit()
}

// New creates the data directory if needed, opens the graph database in WAL
// mode and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "store: create data dir")
	}

	dbPath := filepath.Join(cfg.DataDir, "graph.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "store: open database")
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "store: pragma %q", p)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "store: migration")
	}
	logger.Logger.Debugw("graph store opened", "path", dbPath)

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id         TEXT PRIMARY KEY,
			name       TEXT UNIQUE,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS edges (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			source     TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			axis       TEXT NOT NULL CHECK (axis IN ('types', 'supertypes', 'associations', 'roles')),
			role       TEXT NOT NULL DEFAULT '',
			dest       TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE (source, axis, role, dest)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_forward ON edges(source, axis, role, id);
		CREATE INDEX IF NOT EXISTS idx_edges_reverse ON edges(dest, axis, role, id);
	`
	if _, err := s.execHook(s.db, schema); err != nil {
		return err
	}
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// Now returns the current time formatted for SQLite.
func Now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func scanNote(raw string) (note.Note, error) {
	n, err := note.Parse(raw)
	if err != nil {
		return note.Nil, errors.Wrap(err, "corrupt note id")
	}
	return n, nil
}

// Storage axis names.
const (
	axisTypes        = "types"
	axisSupertypes   = "supertypes"
	axisAssociations = "associations"
	axisRoles        = "roles"
)

// storedAxis maps a navigation axis onto the edges table. Traverse axes are
// simplified first, which may flip dir. Loopback and the remaining Traverse
// axes are not stored.
func storedAxis(axis navigate.Axis, dir navigate.Direction) (kind, role string, d navigate.Direction, err error) {
	if simple, ok := navigate.NewStep(axis, dir).TrySimplify(); ok {
		axis, dir = simple.Axis(), simple.Direction()
	}
	switch axis.Kind {
	case navigate.KindTypes:
		return axisTypes, "", dir, nil
	case navigate.KindSupertypes:
		return axisSupertypes, "", dir, nil
	case navigate.KindRoles:
		return axisRoles, "", dir, nil
	case navigate.KindAssociations:
		return axisAssociations, axis.Role.String(), dir, nil
	}
	return "", "", dir, navigate.Unsupported("sqlite store", axis, dir)
}

// ParseAxis is the inverse of the stored axis naming: it turns an edge
// record's axis and role back into a navigation axis.
func ParseAxis(kind, role string) (navigate.Axis, error) {
	switch kind {
	case axisTypes:
		return navigate.AxisTypes(), nil
	case axisSupertypes:
		return navigate.AxisSupertypes(), nil
	case axisRoles:
		return navigate.AxisRoles(), nil
	case axisAssociations:
		r, err := note.Parse(role)
		if err != nil {
			return navigate.Axis{}, errors.Wrapf(err, "association role %q", role)
		}
		return navigate.AxisAssociations(r), nil
	}
	return navigate.Axis{}, errors.Newf("unknown axis %q", kind)
}
