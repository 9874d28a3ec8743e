package tree

import (
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
)

// Walk visits n and its descendants in depth-first pre-order. fn receives
// the depth (0 for n). Returning false from fn skips that node's children.
func Walk(n domain.Node, fn func(node domain.Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n domain.Node, depth int, fn func(domain.Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	if c, ok := n.(domain.Container); ok {
		for _, child := range c.Kids() {
			walk(child, depth+1, fn)
		}
	}
}

// Parent returns the container that directly holds the node with the given id.
func Parent(n domain.Node, id string) (domain.Container, bool) {
	c, ok := n.(domain.Container)
	if !ok {
		return nil, false
	}
	for _, child := range c.Kids() {
		if child != nil && child.NodeID() == id {
			return c, true
		}
		if p, ok := Parent(child, id); ok {
			return p, true
		}
	}
	return nil, false
}

// IDs returns the ids of n and every descendant, in pre-order. The root
// contributes nothing.
func IDs(n domain.Node) []string {
	var ids []string
	Walk(n, func(node domain.Node, _ int) bool {
		if id := node.NodeID(); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// Progress counts the direct children of c that carry a completion flag
// (items and subtasks) and how many of them are completed.
func Progress(c domain.Container) (done, total int) {
	for _, child := range c.Kids() {
		switch v := child.(type) {
		case *domain.Item:
			total++
			if v.Completed {
				done++
			}
		case *domain.Subtask:
			total++
			if v.Completed {
				done++
			}
		}
	}
	return done, total
}

// Filter returns a copy of root keeping only the items (and section
// subtasks) that match mode. Categories and sections are always kept.
func Filter(root *domain.Root, mode domain.FilterMode) *domain.Root {
	if mode == "" || mode == domain.FilterAll {
		return root
	}
	keep := func(completed bool) bool {
		if mode == domain.FilterCompleted {
			return completed
		}
		return !completed
	}
	return prune(root, func(n domain.Node) bool {
		switch v := n.(type) {
		case *domain.Item:
			return keep(v.Completed)
		case *domain.Subtask:
			return keep(v.Completed)
		}
		return true
	}).(*domain.Root)
}

// Search returns a copy of root holding only the nodes whose title or note
// content contains text (case-insensitive), plus their ancestors. Matching
// containers keep their whole subtree.
func Search(root *domain.Root, text string) *domain.Root {
	text = strings.TrimSpace(text)
	if text == "" {
		return root
	}
	needle := strings.ToLower(text)
	kept, _ := searchNode(root, needle)
	return kept.(*domain.Root)
}

func searchNode(n domain.Node, needle string) (domain.Node, bool) {
	if matches(n, needle) {
		return n, true
	}
	c, ok := n.(domain.Container)
	if !ok {
		return nil, false
	}
	children := make([]domain.Node, 0)
	for _, child := range c.Kids() {
		if kept, ok := searchNode(child, needle); ok {
			children = append(children, kept)
		}
	}
	if len(children) == 0 && n.Kind() != domain.KindRoot {
		return nil, false
	}
	return c.WithChildren(children), len(children) > 0
}

func matches(n domain.Node, needle string) bool {
	var text string
	switch v := n.(type) {
	case *domain.Category:
		text = v.Title
	case *domain.Section:
		text = v.Title
	case *domain.Item:
		text = v.Title
	case *domain.Subtask:
		text = v.Title
	case *domain.Note:
		text = v.Content
	default:
		return false
	}
	return strings.Contains(strings.ToLower(text), needle)
}

// prune copies n dropping every descendant for which keep is false. Items
// are kept or dropped as whole units, children included.
func prune(n domain.Node, keep func(domain.Node) bool) domain.Node {
	c, ok := n.(domain.Container)
	if !ok || n.Kind() == domain.KindItem {
		return n
	}
	children := make([]domain.Node, 0, len(c.Kids()))
	for _, child := range c.Kids() {
		if !keep(child) {
			continue
		}
		children = append(children, prune(child, keep))
	}
	return c.WithChildren(children)
}

// Count returns the number of nodes of each kind under n, n included.
func Count(n domain.Node) map[domain.Kind]int {
	counts := make(map[domain.Kind]int)
	Walk(n, func(node domain.Node, _ int) bool {
		counts[node.Kind()]++
		return true
	})
	return counts
}
