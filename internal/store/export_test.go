package store

import (
	"database/sql"
	"strings"
)

// DB exposes the internal *sql.DB for tests in store_test.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FailExecContaining makes every statement containing fragment fail with err.
func FailExecContaining(s *Store, fragment string, err error) {
	s.hooks.exec = func(db execer, query string, args ...any) (sql.Result, error) {
		if strings.Contains(query, fragment) {
			return nil, err
		}
		return db.Exec(query, args...)
	}
}

// FailQuery makes every read query fail with err.
func FailQuery(s *Store, err error) {
	s.hooks.query = func(queryer, string, ...any) (*sql.Rows, error) {
		return nil, err
	}
}

// FailCommit makes every transaction commit fail with err.
func FailCommit(s *Store, err error) {
	s.hooks.commit = func(*sql.Tx) error { return err }
}

// SetOpenDB swaps the database opener and returns a restore func.
func SetOpenDB(fn func(driver, dsn string) (*sql.DB, error)) func() {
	prev := openDB
	openDB = fn
	return func() { openDB = prev }
}
