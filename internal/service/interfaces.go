package service

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
)

// ExportFormat selects the output of DocumentService.Export.
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// ParseExportFormat accepts "json", "markdown" (or "md") and "html".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, markdown or html)", s)
}

// ApplyResult is the outcome of DocumentService.Apply.
type ApplyResult struct {
	Document *domain.Document
	// CreatedID is the id of the node made by the last add handler, or "".
	CreatedID string
	// Actions are the names of the dispatched actions, in order.
	Actions []string
	// Changed is false when every action hit a missing target.
	Changed bool
}

type DocumentService interface {
	Create(ctx context.Context, name, title string, root *domain.Root) (*domain.Document, error)
	Get(ctx context.Context, name string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	Delete(ctx context.Context, name string) error
	// Apply loads the named document, creating it when absent, runs fn
	// against an editor over its root and saves the result.
	Apply(ctx context.Context, name string, fn func(h editor.Session)) (*ApplyResult, error)
	// Import replaces the named document's tree with the contents of a
	// JSON file, creating the document when absent.
	Import(ctx context.Context, name, path string) (*domain.Document, error)
	Export(ctx context.Context, name string, format ExportFormat, w io.Writer) error
	History(ctx context.Context, name string, limit int) ([]domain.Event, error)
}
