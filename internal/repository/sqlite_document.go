package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tododoc/internal/db"
	"github.com/alexanderramin/tododoc/internal/domain"
)

// SQLiteDocumentRepo implements DocumentRepo on the documents table.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

const documentColumns = `id, name, title, body, revision, created_at, updated_at`

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	body, err := encodeBody(d.Root)
	if err != nil {
		return err
	}
	if d.Revision < 1 {
		d.Revision = 1
	}
	query := `INSERT INTO documents (` + documentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Title,
		body,
		d.Revision,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("inserting document %q: %w", d.Name, ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByName(ctx context.Context, name string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE name = ?`
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	return d, err
}

func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteDocumentRepo) Save(ctx context.Context, d *domain.Document, expectedRevision int) error {
	body, err := encodeBody(d.Root)
	if err != nil {
		return err
	}
	query := `UPDATE documents SET title = ?, body = ?, revision = revision + 1, updated_at = ?
		WHERE id = ? AND revision = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Title,
		body,
		formatTime(d.UpdatedAt),
		d.ID,
		expectedRevision,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	if n == 0 {
		return r.missOrConflict(ctx, d)
	}
	d.Revision = expectedRevision + 1
	return nil
}

// missOrConflict tells a vanished document from a stale revision.
func (r *SQLiteDocumentRepo) missOrConflict(ctx context.Context, d *domain.Document) error {
	var rev int
	err := r.db.QueryRowContext(ctx, `SELECT revision FROM documents WHERE id = ?`, d.ID).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("document %q: %w", d.Name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking document revision: %w", err)
	}
	return fmt.Errorf("document %q at revision %d: %w", d.Name, rev, ErrRevisionConflict)
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var body, createdAt, updatedAt string
	err := row.Scan(&d.ID, &d.Name, &d.Title, &body, &d.Revision, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if d.Root, err = decodeBody(body); err != nil {
		return nil, fmt.Errorf("document %q: %w", d.Name, err)
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
