package store

import (
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/note"
)

// ─── Notes ───────────────────────────────────────────────────────────────────

// CreateNote stores a fresh note. An empty name creates an anonymous note.
// Names are unique and the well-known names are reserved.
func (s *Store) CreateNote(name string) (note.Note, error) {
	name = strings.TrimSpace(name)
	if _, reserved := note.ByWellKnownName(name); reserved {
		return note.Nil, errors.Newf("store: name %q is reserved", name)
	}

	n := note.New()
	_, err := s.execHook(s.db,
		`INSERT INTO notes (id, name, created_at) VALUES (?, ?, ?)`,
		n.String(), nullableString(name), Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return note.Nil, errors.Newf("store: name %q already exists", name)
		}
		return note.Nil, errors.Wrap(err, "store: create note")
	}
	return n, nil
}

// GetNote returns the stored record for n.
func (s *Store) GetNote(n note.Note) (*NoteRecord, error) {
	rows, err := s.queryHook(s.db,
		`SELECT id, COALESCE(name, ''), created_at FROM notes WHERE id = ?`, n.String())
	if err != nil {
		return nil, errors.Wrap(err, "store: get note")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrap(err, "store: get note")
		}
		return nil, errors.Wrapf(ErrNotFound, "note %s", n)
	}
	rec, err := scanNoteRecord(rows)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ResolveName turns a name into a note. Stored names win over well-known
// names; a literal UUID resolves to itself.
func (s *Store) ResolveName(name string) (note.Note, error) {
	rows, err := s.queryHook(s.db, `SELECT id FROM notes WHERE name = ?`, name)
	if err != nil {
		return note.Nil, errors.Wrap(err, "store: resolve name")
	}
	defer rows.Close()

	if rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return note.Nil, errors.Wrap(err, "store: resolve name")
		}
		return scanNote(raw)
	}
	if err := rows.Err(); err != nil {
		return note.Nil, errors.Wrap(err, "store: resolve name")
	}

	if n, ok := note.ByWellKnownName(name); ok {
		return n, nil
	}
	if n, err := note.Parse(name); err == nil {
		return n, nil
	}
	return note.Nil, errors.Wrapf(ErrNotFound, "name %q", name)
}

// NameOf returns the display name of n: its stored name, else its
// well-known name.
func (s *Store) NameOf(n note.Note) (string, bool) {
	var name sql.NullString
	err := s.db.QueryRow(`SELECT name FROM notes WHERE id = ?`, n.String()).Scan(&name)
	if err == nil && name.Valid {
		return name.String, true
	}
	return note.WellKnownName(n)
}

// ListNotes returns stored notes in creation order. limit <= 0 means all.
func (s *Store) ListNotes(limit int) ([]NoteRecord, error) {
	query := `SELECT id, COALESCE(name, ''), created_at FROM notes ORDER BY rowid`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.queryHook(s.db, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: list notes")
	}
	defer rows.Close()

	var out []NoteRecord
	for rows.Next() {
		rec, err := scanNoteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// ensureNote registers n if it is not stored yet, so edges may point at
// notes that were never created through CreateNote. Well-known notes get
// their well-known name.
func (s *Store) ensureNote(db execer, n note.Note) error {
	name, _ := note.WellKnownName(n)
	_, err := s.execHook(db,
		`INSERT OR IGNORE INTO notes (id, name, created_at) VALUES (?, ?, ?)`,
		n.String(), nullableString(name), Now(),
	)
	if err != nil {
		return errors.Wrapf(err, "register note %s", n)
	}
	return nil
}

func scanNoteRecord(rows *sql.Rows) (*NoteRecord, error) {
	var rec NoteRecord
	var raw string
	if err := rows.Scan(&raw, &rec.Name, &rec.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "store: scan note")
	}
	id, err := scanNote(raw)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}
