package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

var connPragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode = WAL", "journal mode"},
	{"PRAGMA busy_timeout = 5000", "busy timeout"},
	{"PRAGMA foreign_keys = ON", "foreign keys"},
}

// OpenDB opens the SQLite document store at path and runs migrations.
// The pool is held to one connection: pragmas are per-connection and an
// in-memory database is private to the connection that made it.
// Callers must not touch the *sql.DB while a transaction is open.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	for _, p := range connPragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting %s: %w", p.what, err)
		}
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return conn, nil
}
