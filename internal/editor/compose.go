package editor

import (
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
)

// The helpers below chain an add handler with an edit so callers can
// create a node with caller-supplied fields in one step. Empty arguments
// keep the configured defaults. Each returns the new id, or "" when the
// parent was not found.

func AddCategoryWith(s Session, title, color string) string {
	s.AddCategory()
	id := s.LastCreatedID()
	if id != "" && (title != "" || color != "") {
		EditCategory(s, id, title, color)
	}
	return id
}

func AddSectionWith(s Session, categoryID, title string) string {
	s.AddSection(categoryID)
	id := s.LastCreatedID()
	if id != "" && title != "" {
		s.EditSection(id, title)
	}
	return id
}

// AddItemWith adds an item under a category or a section, whichever
// parentID names.
func AddItemWith(s Session, parentID, title string, priority domain.Priority) string {
	parent, ok := tree.Find(s.Root(), parentID)
	if !ok {
		return ""
	}
	switch parent.Kind() {
	case domain.KindCategory:
		s.AddItemToCategory(parentID)
	case domain.KindSection:
		s.AddItemToSection(parentID)
	default:
		return ""
	}
	id := s.LastCreatedID()
	if id != "" && (title != "" || priority != "") {
		EditItemFields(s, id, title, priority)
	}
	return id
}

func AddSubtaskWith(s Session, parentID, title string) string {
	s.AddSubtask(parentID)
	id := s.LastCreatedID()
	if id != "" && title != "" {
		s.EditSubtask(id, title)
	}
	return id
}

func AddNoteWith(s Session, parentID, content string) string {
	s.AddNote(parentID)
	id := s.LastCreatedID()
	if id != "" && content != "" {
		s.EditNote(id, content)
	}
	return id
}

// EditCategory updates whichever of title and color is non-empty.
func EditCategory(s Session, id, title, color string) {
	n, ok := tree.Find(s.Root(), id)
	if !ok {
		return
	}
	c, ok := n.(*domain.Category)
	if !ok {
		return
	}
	if title == "" {
		title = c.Title
	}
	if color == "" {
		color = c.Color
	}
	s.UpdateCategorySettings(id, title, color)
}

// EditItemFields updates whichever of title and priority is non-empty.
func EditItemFields(s Session, id, title string, priority domain.Priority) {
	n, ok := tree.Find(s.Root(), id)
	if !ok {
		return
	}
	it, ok := n.(*domain.Item)
	if !ok {
		return
	}
	if title == "" {
		title = it.Title
	}
	if priority == "" {
		priority = it.Priority
	}
	s.EditItem(id, title, priority)
}
