// Package action defines the closed set of mutation intents on a to-do
// document and the pure reducer that applies them.
package action

import "github.com/alexanderramin/tododoc/internal/domain"

// Action is a named mutation intent. The set is closed: only the types in
// this package implement it.
type Action interface {
	Name() string
	action()
}

type ToggleSection struct{ SectionID string }

type AddItemToSection struct {
	SectionID string
	Item      *domain.Item
}

type AddCategory struct{ Category *domain.Category }

type DeleteCategory struct{ CategoryID string }

type UpdateCategorySettings struct {
	CategoryID string
	Title      string
	Color      string
}

type AddItemToCategory struct {
	CategoryID string
	Item       *domain.Item
}

type ToggleItem struct{ ItemID string }

// AddSubtask appends a subtask to an item or a section.
type AddSubtask struct {
	ParentID string
	Subtask  *domain.Subtask
}

type AddSection struct {
	CategoryID string
	Section    *domain.Section
}

// AddNote appends a note to an item or a section.
type AddNote struct {
	ParentID string
	Note     *domain.Note
}

type EditItem struct {
	ItemID   string
	Title    string
	Priority domain.Priority
}

type EditSection struct {
	SectionID string
	Title     string
}

type DeleteItem struct{ ItemID string }

type DeleteSection struct{ SectionID string }

type ToggleSubtask struct{ SubtaskID string }

type EditSubtask struct {
	SubtaskID string
	Title     string
}

type DeleteSubtask struct{ SubtaskID string }

type EditNote struct {
	NoteID  string
	Content string
}

type DeleteNote struct{ NoteID string }

func (ToggleSection) Name() string          { return "toggle-section" }
func (AddItemToSection) Name() string       { return "add-item-to-section" }
func (AddCategory) Name() string            { return "add-category" }
func (DeleteCategory) Name() string         { return "delete-category" }
func (UpdateCategorySettings) Name() string { return "update-category-settings" }
func (AddItemToCategory) Name() string      { return "add-item-to-category" }
func (ToggleItem) Name() string             { return "toggle-item" }
func (AddSubtask) Name() string             { return "add-subtask" }
func (AddSection) Name() string             { return "add-section" }
func (AddNote) Name() string                { return "add-note" }
func (EditItem) Name() string               { return "edit-item" }
func (EditSection) Name() string            { return "edit-section" }
func (DeleteItem) Name() string             { return "delete-item" }
func (DeleteSection) Name() string          { return "delete-section" }
func (ToggleSubtask) Name() string          { return "toggle-subtask" }
func (EditSubtask) Name() string            { return "edit-subtask" }
func (DeleteSubtask) Name() string          { return "delete-subtask" }
func (EditNote) Name() string               { return "edit-note" }
func (DeleteNote) Name() string             { return "delete-note" }

func (ToggleSection) action()          {}
func (AddItemToSection) action()       {}
func (AddCategory) action()            {}
func (DeleteCategory) action()         {}
func (UpdateCategorySettings) action() {}
func (AddItemToCategory) action()      {}
func (ToggleItem) action()             {}
func (AddSubtask) action()             {}
func (AddSection) action()             {}
func (AddNote) action()                {}
func (EditItem) action()               {}
func (EditSection) action()            {}
func (DeleteItem) action()             {}
func (DeleteSection) action()          {}
func (ToggleSubtask) action()          {}
func (EditSubtask) action()            {}
func (DeleteSubtask) action()          {}
func (EditNote) action()               {}
func (DeleteNote) action()             {}

// TargetID returns the node id an action addresses: the parent for adds,
// the node itself otherwise. AddCategory has no target.
func TargetID(a Action) string {
	switch a := a.(type) {
	case ToggleSection:
		return a.SectionID
	case AddItemToSection:
		return a.SectionID
	case DeleteCategory:
		return a.CategoryID
	case UpdateCategorySettings:
		return a.CategoryID
	case AddItemToCategory:
		return a.CategoryID
	case ToggleItem:
		return a.ItemID
	case AddSubtask:
		return a.ParentID
	case AddSection:
		return a.CategoryID
	case AddNote:
		return a.ParentID
	case EditItem:
		return a.ItemID
	case EditSection:
		return a.SectionID
	case DeleteItem:
		return a.ItemID
	case DeleteSection:
		return a.SectionID
	case ToggleSubtask:
		return a.SubtaskID
	case EditSubtask:
		return a.SubtaskID
	case DeleteSubtask:
		return a.SubtaskID
	case EditNote:
		return a.NoteID
	case DeleteNote:
		return a.NoteID
	}
	return ""
}
