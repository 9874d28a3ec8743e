package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		body       TEXT NOT NULL CHECK(json_valid(body)),
		revision   INTEGER NOT NULL DEFAULT 1 CHECK(revision >= 1),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at)`,

	// v2: human-readable title shown by "list".
	`ALTER TABLE documents ADD COLUMN title TEXT NOT NULL DEFAULT ''`,

	// v3: append-only log of applied actions per document.
	`CREATE TABLE IF NOT EXISTS document_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		revision    INTEGER NOT NULL,
		action      TEXT NOT NULL,
		target_id   TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_document_events_doc ON document_events(document_id, id)`,
}
