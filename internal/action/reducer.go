package action

import (
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
)

// Policy controls how an item's completion flag relates to its subtasks.
type Policy string

const (
	// PolicyIndependent keeps every completion flag settable on its own.
	PolicyIndependent Policy = "independent"
	// PolicyRollup derives an item's flag from its subtasks after each
	// toggle, add or delete, and cascades an item toggle down to them.
	PolicyRollup Policy = "rollup"
)

// ParsePolicy validates s as a completion policy. Empty means independent.
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case "", PolicyIndependent:
		return PolicyIndependent, true
	case PolicyRollup:
		return PolicyRollup, true
	}
	return "", false
}

// Reducer applies actions to a root. The zero value uses PolicyIndependent.
type Reducer struct {
	Policy Policy
}

// Reduce returns the root produced by applying a to root. root is never
// modified. A nil or unrecognized action returns root unchanged.
func (r Reducer) Reduce(root *domain.Root, a Action) *domain.Root {
	if root == nil {
		root = domain.NewRoot()
	}
	next, structural := r.apply(root, a)
	if r.Policy == PolicyRollup && structural {
		next = Rollup(next)
	}
	return next
}

// apply performs the single tree operation for a. structural reports
// whether completion rollup should run afterwards.
func (r Reducer) apply(root *domain.Root, a Action) (*domain.Root, bool) {
	switch a := a.(type) {
	case ToggleSection:
		return updateSection(root, a.SectionID, func(s *domain.Section) {
			s.Collapsed = !s.Collapsed
		}), false

	case AddItemToSection:
		return addChild(root, a.SectionID, a.Item), true

	case AddCategory:
		if a.Category == nil {
			return root, false
		}
		children := make([]domain.Node, 0, len(root.Children)+1)
		children = append(children, root.Children...)
		children = append(children, a.Category)
		return &domain.Root{Children: children}, false

	case DeleteCategory:
		return tree.DeleteRoot(root, a.CategoryID), false

	case UpdateCategorySettings:
		return updateCategory(root, a.CategoryID, func(c *domain.Category) {
			c.Title = a.Title
			c.Color = a.Color
		}), false

	case AddItemToCategory:
		return addChild(root, a.CategoryID, a.Item), true

	case ToggleItem:
		return updateItem(root, a.ItemID, func(it *domain.Item) {
			it.Completed = !it.Completed
			if r.Policy == PolicyRollup {
				it.Children = cascade(it.Children, it.Completed)
			}
		}), true

	case AddSubtask:
		return addChild(root, a.ParentID, a.Subtask), true

	case AddSection:
		return addChild(root, a.CategoryID, a.Section), false

	case AddNote:
		return addChild(root, a.ParentID, a.Note), false

	case EditItem:
		return updateItem(root, a.ItemID, func(it *domain.Item) {
			it.Title = a.Title
			it.Priority = a.Priority
		}), false

	case EditSection:
		return updateSection(root, a.SectionID, func(s *domain.Section) {
			s.Title = a.Title
		}), false

	case DeleteItem:
		return tree.DeleteRoot(root, a.ItemID), true

	case DeleteSection:
		return tree.DeleteRoot(root, a.SectionID), true

	case ToggleSubtask:
		return updateSubtask(root, a.SubtaskID, func(s *domain.Subtask) {
			s.Completed = !s.Completed
		}), true

	case EditSubtask:
		return updateSubtask(root, a.SubtaskID, func(s *domain.Subtask) {
			s.Title = a.Title
		}), false

	case DeleteSubtask:
		return tree.DeleteRoot(root, a.SubtaskID), true

	case EditNote:
		return updateNote(root, a.NoteID, func(n *domain.Note) {
			n.Content = a.Content
		}), false

	case DeleteNote:
		return tree.DeleteRoot(root, a.NoteID), false
	}
	return root, false
}

func addChild(root *domain.Root, parentID string, n domain.Node) *domain.Root {
	if isNil(n) {
		return root
	}
	return tree.AddRoot(root, parentID, n)
}

// isNil catches typed nil pointers boxed in the Node interface.
func isNil(n domain.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *domain.Category:
		return v == nil
	case *domain.Section:
		return v == nil
	case *domain.Item:
		return v == nil
	case *domain.Subtask:
		return v == nil
	case *domain.Note:
		return v == nil
	}
	return false
}

// The update helpers hand fn a private copy of the target. A target of the
// wrong kind is left as is.

func updateCategory(root *domain.Root, id string, fn func(*domain.Category)) *domain.Root {
	return tree.UpdateRoot(root, id, func(n domain.Node) domain.Node {
		c, ok := n.(*domain.Category)
		if !ok {
			return n
		}
		cp := *c
		fn(&cp)
		return &cp
	})
}

func updateSection(root *domain.Root, id string, fn func(*domain.Section)) *domain.Root {
	return tree.UpdateRoot(root, id, func(n domain.Node) domain.Node {
		s, ok := n.(*domain.Section)
		if !ok {
			return n
		}
		cp := *s
		fn(&cp)
		return &cp
	})
}

func updateItem(root *domain.Root, id string, fn func(*domain.Item)) *domain.Root {
	return tree.UpdateRoot(root, id, func(n domain.Node) domain.Node {
		it, ok := n.(*domain.Item)
		if !ok {
			return n
		}
		cp := *it
		fn(&cp)
		return &cp
	})
}

func updateSubtask(root *domain.Root, id string, fn func(*domain.Subtask)) *domain.Root {
	return tree.UpdateRoot(root, id, func(n domain.Node) domain.Node {
		s, ok := n.(*domain.Subtask)
		if !ok {
			return n
		}
		cp := *s
		fn(&cp)
		return &cp
	})
}

func updateNote(root *domain.Root, id string, fn func(*domain.Note)) *domain.Root {
	return tree.UpdateRoot(root, id, func(n domain.Node) domain.Node {
		note, ok := n.(*domain.Note)
		if !ok {
			return n
		}
		cp := *note
		fn(&cp)
		return &cp
	})
}
