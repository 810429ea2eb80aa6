package store

import (
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
)

// ─── Adjacency ───────────────────────────────────────────────────────────────

// Adjacent implements navigate.Adjacency. Notes come back in edge insertion
// order.
func (s *Store) Adjacent(source note.Note, axis navigate.Axis, dir navigate.Direction) ([]note.Note, error) {
	kind, role, d, err := storedAxis(axis, dir)
	if err != nil {
		return nil, err
	}

	query := `SELECT dest FROM edges WHERE source = ? AND axis = ? AND role = ? ORDER BY id`
	if d == navigate.Reverse {
		query = `SELECT source FROM edges WHERE dest = ? AND axis = ? AND role = ? ORDER BY id`
	}
	rows, err := s.queryHook(s.db, query, source.String(), kind, role)
	if err != nil {
		return nil, errors.Wrapf(err, "store: adjacent %s", source)
	}
	defer rows.Close()

	var out []note.Note
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "store: scan adjacent")
		}
		n, err := scanNote(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ─── Edges ───────────────────────────────────────────────────────────────────

// PushAdjacentNotes makes every destination adjacent to every source along
// step, all in one transaction. A reverse step stores the inverted edge.
// Edges that already exist are left alone; the IDs of the edges actually
// added are returned.
func (s *Store) PushAdjacentNotes(sources []note.Note, step navigate.Step, destinations []note.Note) ([]int64, error) {
	kind, role, d, err := storedAxis(step.Axis(), step.Direction())
	if err != nil {
		return nil, err
	}

	tx, err := s.beginTxHook()
	if err != nil {
		return nil, errors.Wrap(err, "store: begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var ids []int64
	for _, src := range sources {
		for _, dst := range destinations {
			from, to := src, dst
			if d == navigate.Reverse {
				from, to = dst, src
			}
			id, err := s.insertEdge(tx, from, kind, role, to)
			if err != nil {
				return nil, err
			}
			if id != 0 {
				ids = append(ids, id)
			}
		}
	}

	if err := s.commitHook(tx); err != nil {
		return nil, errors.Wrap(err, "store: commit transaction")
	}
	return ids, nil
}

// AddTriples stores triples in a single transaction and returns how many
// new edges were written. Any failure rolls back the whole batch.
func (s *Store) AddTriples(triples []navigate.Triple) (int, error) {
	tx, err := s.beginTxHook()
	if err != nil {
		return 0, errors.Wrap(err, "store: begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	added, err := s.addTriples(tx, triples)
	if err != nil {
		return 0, err
	}

	if err := s.commitHook(tx); err != nil {
		return 0, errors.Wrap(err, "store: commit transaction")
	}
	logger.Logger.Debugw("triples stored", "received", len(triples), "added", added)
	return added, nil
}

func (s *Store) addTriples(tx *sql.Tx, triples []navigate.Triple) (int, error) {
	added := 0
	for i, t := range triples {
		kind, role, d, err := storedAxis(t.Axis, navigate.Forward)
		if err != nil {
			return 0, errors.Wrapf(err, "triple %d", i)
		}
		from, to := t.Source, t.Dest
		if d == navigate.Reverse {
			from, to = to, from
		}
		id, err := s.insertEdge(tx, from, kind, role, to)
		if err != nil {
			return 0, errors.Wrapf(err, "triple %d", i)
		}
		if id != 0 {
			added++
		}
	}
	return added, nil
}

// insertEdge writes one edge, registering its endpoints first. It returns
// 0 when the edge already existed.
func (s *Store) insertEdge(db execer, from note.Note, kind, role string, to note.Note) (int64, error) {
	if err := s.ensureNote(db, from); err != nil {
		return 0, err
	}
	if err := s.ensureNote(db, to); err != nil {
		return 0, err
	}

	res, err := s.execHook(db,
		`INSERT OR IGNORE INTO edges (source, axis, role, dest, created_at) VALUES (?, ?, ?, ?, ?)`,
		from.String(), kind, role, to.String(), Now(),
	)
	if err != nil {
		return 0, errors.Wrapf(err, "store: insert edge %s -%s-> %s", from, kind, to)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, nil
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RemoveEdge hard-deletes an edge by its ID.
func (s *Store) RemoveEdge(id int64) error {
	res, err := s.execHook(s.db, `DELETE FROM edges WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "store: delete edge")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "edge %d", id)
	}
	return nil
}

// Edges returns every edge touching n, as source or destination, in
// insertion order.
func (s *Store) Edges(n note.Note) ([]EdgeRecord, error) {
	return s.queryEdges(
		`SELECT id, source, axis, role, dest, created_at
		 FROM edges
		 WHERE source = ? OR dest = ?
		 ORDER BY id`,
		n.String(), n.String(),
	)
}

func (s *Store) queryEdges(query string, args ...any) ([]EdgeRecord, error) {
	rows, err := s.queryHook(s.db, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: query edges")
	}
	defer rows.Close()

	var out []EdgeRecord
	for rows.Next() {
		var e EdgeRecord
		var src, dst string
		if err := rows.Scan(&e.ID, &src, &e.Axis, &e.Role, &dst, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "store: scan edge")
		}
		if e.Source, err = scanNote(src); err != nil {
			return nil, err
		}
		if e.Dest, err = scanNote(dst); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SeedBuiltins stores the well-known notes and the built-in taxonomy as
// ordinary edges. Running it again adds nothing.
func (s *Store) SeedBuiltins() (int, error) {
	tx, err := s.beginTxHook()
	if err != nil {
		return 0, errors.Wrap(err, "store: begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, n := range note.WellKnown() {
		if err := s.ensureNote(tx, n); err != nil {
			return 0, err
		}
	}
	added, err := s.addTriples(tx, navigate.BuiltinTriples())
	if err != nil {
		return 0, errors.Wrap(err, "store: seed builtins")
	}

	if err := s.commitHook(tx); err != nil {
		return 0, errors.Wrap(err, "store: commit transaction")
	}
	if added > 0 {
		logger.Logger.Infow("built-in taxonomy seeded", "edges", added)
	}
	return added, nil
}
