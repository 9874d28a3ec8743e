package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tododoc/internal/domain"
)

var (
	// ErrNotFound is returned when no document has the requested name.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateName is returned when creating a document whose name is taken.
	ErrDuplicateName = errors.New("document name already exists")
	// ErrRevisionConflict is returned by Save when the stored revision is no
	// longer the one the caller loaded.
	ErrRevisionConflict = errors.New("document was modified concurrently")
)

// DocumentRepo persists named document snapshots.
type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByName(ctx context.Context, name string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	// Save stores d if the current revision equals expectedRevision, then
	// sets d.Revision to expectedRevision+1.
	Save(ctx context.Context, d *domain.Document, expectedRevision int) error
	Delete(ctx context.Context, name string) error
}

// EventRepo keeps the per-document action history.
type EventRepo interface {
	Append(ctx context.Context, events []domain.Event) error
	// ListByDocument returns the newest events first, at most limit.
	ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.Event, error)
}

// Store opens a unit of work over both repositories. For SQLite the
// callback runs inside one transaction; the mongo store relies on the
// revision check of Save instead.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, docs DocumentRepo, events EventRepo) error) error
}
