package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tododoc/internal/db"
	"github.com/alexanderramin/tododoc/internal/domain"
)

// SQLiteEventRepo implements EventRepo on the document_events table.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

func (r *SQLiteEventRepo) Append(ctx context.Context, events []domain.Event) error {
	query := `INSERT INTO document_events (document_id, revision, action, target_id, created_at)
		VALUES (?, ?, ?, ?, ?)`
	for _, e := range events {
		_, err := r.db.ExecContext(ctx, query,
			e.DocumentID,
			e.Revision,
			e.Action,
			e.TargetID,
			formatTime(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting event %s: %w", e.Action, err)
		}
	}
	return nil
}

func (r *SQLiteEventRepo) ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT document_id, revision, action, target_id, created_at
		FROM document_events WHERE document_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdAt string
		if err := rows.Scan(&e.DocumentID, &e.Revision, &e.Action, &e.TargetID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
