package domain

import (
	"fmt"
	"regexp"
	"time"
)

var documentNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// Document is a named, revisioned snapshot of a to-do tree.
type Document struct {
	ID        string
	Name      string
	Title     string
	Root      *Root
	Revision  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateName checks that Name is a lowercase slug (e.g. "personal", "work-2025").
func (d *Document) ValidateName() error {
	if d.Name == "" {
		return fmt.Errorf("document name is required")
	}
	if !documentNamePattern.MatchString(d.Name) {
		return fmt.Errorf("document name %q must be lowercase letters, digits, '-' or '_'", d.Name)
	}
	return nil
}

// DisplayID returns the first 8 characters of ID.
func (d *Document) DisplayID() string {
	if len(d.ID) >= 8 {
		return d.ID[:8]
	}
	return d.ID
}

// Event records one action applied to a document.
type Event struct {
	DocumentID string
	Revision   int
	Action     string
	TargetID   string
	CreatedAt  time.Time
}
