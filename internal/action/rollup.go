package action

import "github.com/alexanderramin/tododoc/internal/domain"

// Rollup recomputes the completion flag of every item that has at least
// one subtask: the item is completed iff all of its subtasks are. Items
// without subtasks keep their flag. Nodes whose flag does not change are
// shared with the input.
func Rollup(root *domain.Root) *domain.Root {
	return rollup(root).(*domain.Root)
}

func rollup(n domain.Node) domain.Node {
	c, ok := n.(domain.Container)
	if !ok {
		return n
	}
	if it, ok := n.(*domain.Item); ok {
		done, total := subtaskProgress(it.Children)
		if total == 0 || it.Completed == (done == total) {
			return n
		}
		cp := *it
		cp.Completed = done == total
		return &cp
	}
	kids := c.Kids()
	if kids == nil {
		return n
	}
	changed := false
	children := make([]domain.Node, len(kids))
	for i, child := range kids {
		children[i] = rollup(child)
		if children[i] != child {
			changed = true
		}
	}
	if !changed {
		return n
	}
	return c.WithChildren(children)
}

func subtaskProgress(children []domain.Node) (done, total int) {
	for _, child := range children {
		if s, ok := child.(*domain.Subtask); ok {
			total++
			if s.Completed {
				done++
			}
		}
	}
	return done, total
}

// cascade returns children with every subtask set to completed. Other
// children are shared.
func cascade(children []domain.Node, completed bool) []domain.Node {
	if children == nil {
		return nil
	}
	out := make([]domain.Node, len(children))
	for i, child := range children {
		s, ok := child.(*domain.Subtask)
		if !ok || s.Completed == completed {
			out[i] = child
			continue
		}
		cp := *s
		cp.Completed = completed
		out[i] = &cp
	}
	return out
}
