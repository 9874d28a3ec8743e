package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, obj := range []struct{ kind, name string }{
		{"table", "documents"},
		{"table", "document_events"},
		{"index", "idx_documents_updated"},
		{"index", "idx_document_events_doc"},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = ? AND name = ?`, obj.kind, obj.name).Scan(&name)
		require.NoError(t, err, "%s %s should exist", obj.kind, obj.name)
		assert.Equal(t, obj.name, name)
	}
}

func TestMigrate_RejectsInvalidBody(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO documents (id, name, body, created_at, updated_at)
		VALUES ('x', 'x', 'not json', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_EventsCascadeOnDocumentDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO documents (id, name, body, created_at, updated_at)
		VALUES ('d', 'd', '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO document_events (document_id, revision, action, created_at)
		VALUES ('d', 2, 'add-category', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM documents WHERE id = 'd'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM document_events`).Scan(&n))
	assert.Equal(t, 0, n)
}

// A database created before the title column existed gains it with an
// empty default and keeps its rows.
func TestMigrate_UpgradeAddsTitle(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(migrations[0])
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO documents (id, name, body, created_at, updated_at)
		VALUES ('old', 'legacy', '{}', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var title string
	var rev int
	require.NoError(t, db.QueryRow(`SELECT title, revision FROM documents WHERE id = 'old'`).Scan(&title, &rev))
	assert.Equal(t, "", title)
	assert.Equal(t, 1, rev)
}
