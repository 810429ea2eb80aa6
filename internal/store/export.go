package store

import (
	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/notenav/internal/logger"
)

// exportVersion identifies the ExportData layout.
const exportVersion = "1"

// ─── Export / Import ─────────────────────────────────────────────────────────

// Export dumps every note and edge.
func (s *Store) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    exportVersion,
		ExportedAt: Now(),
	}

	notes, err := s.ListNotes(0)
	if err != nil {
		return nil, errors.Wrap(err, "export notes")
	}
	data.Notes = notes

	edges, err := s.queryEdges(
		`SELECT id, source, axis, role, dest, created_at FROM edges ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "export edges")
	}
	data.Edges = edges

	return data, nil
}

// Import loads exported data. Notes are matched by ID and edges by their
// (source, axis, role, dest) key, so importing the same dump twice adds
// nothing the second time. Edge IDs are reassigned.
func (s *Store) Import(data *ExportData) (*ImportResult, error) {
	if data.Version != "" && data.Version != exportVersion {
		return nil, errors.Newf("import: unsupported export version %q", data.Version)
	}

	tx, err := s.beginTxHook()
	if err != nil {
		return nil, errors.Wrap(err, "import: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	result := &ImportResult{}

	for _, n := range data.Notes {
		createdAt := n.CreatedAt
		if createdAt == "" {
			createdAt = Now()
		}
		res, err := s.execHook(tx,
			`INSERT OR IGNORE INTO notes (id, name, created_at) VALUES (?, ?, ?)`,
			n.ID.String(), nullableString(n.Name), createdAt,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "import note %s", n.ID)
		}
		added, _ := res.RowsAffected()
		result.NotesImported += int(added)
	}

	for i, e := range data.Edges {
		if _, err := ParseAxis(e.Axis, e.Role); err != nil {
			return nil, errors.Wrapf(err, "import edge %d", i)
		}
		id, err := s.insertEdge(tx, e.Source, e.Axis, e.Role, e.Dest)
		if err != nil {
			return nil, errors.Wrapf(err, "import edge %d", i)
		}
		if id != 0 {
			result.EdgesImported++
		}
	}

	if err := s.commitHook(tx); err != nil {
		return nil, errors.Wrap(err, "import: commit")
	}

	logger.Logger.Infow("graph imported",
		"notes", result.NotesImported, "edges", result.EdgesImported)
	return result, nil
}
