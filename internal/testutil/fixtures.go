package testutil

import (
	"time"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/importer"
	"github.com/google/uuid"
)

type DocumentOption func(*domain.Document)

func WithRoot(root *domain.Root) DocumentOption {
	return func(d *domain.Document) {
		d.Root = root
	}
}

func WithTitle(title string) DocumentOption {
	return func(d *domain.Document) {
		d.Title = title
	}
}

// WithExample seeds the document with the bundled sample tree.
func WithExample() DocumentOption {
	return func(d *domain.Document) {
		d.Root = importer.Example()
	}
}

func NewTestDocument(name string, opts ...DocumentOption) *domain.Document {
	now := time.Now().UTC()
	d := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Root:      domain.NewRoot(),
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func NewTestCategory(id, title string, children ...domain.Node) *domain.Category {
	return &domain.Category{ID: id, Title: title, Color: "#6366f1", Children: children}
}

func NewTestItem(id, title string, children ...domain.Node) *domain.Item {
	return &domain.Item{ID: id, Title: title, Priority: domain.PriorityMedium, Children: children}
}

func NewTestSubtask(id, title string, completed bool) *domain.Subtask {
	return &domain.Subtask{ID: id, Title: title, Completed: completed}
}
