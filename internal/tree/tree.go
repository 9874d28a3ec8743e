// Package tree implements the copy-on-write algorithms over a to-do
// document: Find, Add, Update and Delete, plus read-only helpers.
//
// Every mutating function returns a new tree and leaves its input
// untouched. An id that matches nothing is never an error; the result is a
// structurally equal copy of the input. The root has no id, so it can be a
// parent only through direct construction (see action.AddCategory) and can
// never be deleted.
package tree

import "github.com/alexanderramin/tododoc/internal/domain"

// Find returns the first node with the given id in depth-first pre-order.
func Find(n domain.Node, id string) (domain.Node, bool) {
	if n == nil {
		return nil, false
	}
	if id != "" && n.NodeID() == id {
		return n, true
	}
	c, ok := n.(domain.Container)
	if !ok {
		return nil, false
	}
	for _, child := range c.Kids() {
		if found, ok := Find(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// Add appends newNode to the children of the node whose id is parentID.
// The append only happens when the parent kind may hold the new node's
// kind; otherwise the tree is copied unchanged.
func Add(n domain.Node, parentID string, newNode domain.Node) domain.Node {
	c, ok := n.(domain.Container)
	if !ok {
		return n
	}
	if parentID != "" && n.NodeID() == parentID && newNode != nil && domain.CanContain(n.Kind(), newNode.Kind()) {
		kids := c.Kids()
		children := make([]domain.Node, 0, len(kids)+1)
		children = append(children, kids...)
		children = append(children, newNode)
		return c.WithChildren(children)
	}
	return c.WithChildren(mapChildren(c.Kids(), func(child domain.Node) domain.Node {
		return Add(child, parentID, newNode)
	}))
}

// Update replaces the node whose id is targetID with fn(node). The
// replacement keeps the original id; an fn that returns nil or a node of a
// different kind leaves the target unchanged.
func Update(n domain.Node, targetID string, fn func(domain.Node) domain.Node) domain.Node {
	if n == nil {
		return nil
	}
	if targetID != "" && n.NodeID() == targetID {
		updated := fn(n)
		if updated == nil || updated.Kind() != n.Kind() || updated.NodeID() != targetID {
			return n
		}
		return updated
	}
	c, ok := n.(domain.Container)
	if !ok {
		return n
	}
	return c.WithChildren(mapChildren(c.Kids(), func(child domain.Node) domain.Node {
		return Update(child, targetID, fn)
	}))
}

// Delete removes every child whose id is targetID, together with its
// subtree, at any depth.
func Delete(n domain.Node, targetID string) domain.Node {
	c, ok := n.(domain.Container)
	if !ok {
		return n
	}
	kids := c.Kids()
	if kids == nil {
		return c.WithChildren(nil)
	}
	children := make([]domain.Node, 0, len(kids))
	for _, child := range kids {
		if targetID != "" && child != nil && child.NodeID() == targetID {
			continue
		}
		children = append(children, Delete(child, targetID))
	}
	return c.WithChildren(children)
}

// UpdateRoot, AddRoot and DeleteRoot are typed wrappers for callers that
// hold a *domain.Root.

func AddRoot(root *domain.Root, parentID string, newNode domain.Node) *domain.Root {
	return Add(root, parentID, newNode).(*domain.Root)
}

func UpdateRoot(root *domain.Root, targetID string, fn func(domain.Node) domain.Node) *domain.Root {
	return Update(root, targetID, fn).(*domain.Root)
}

func DeleteRoot(root *domain.Root, targetID string) *domain.Root {
	return Delete(root, targetID).(*domain.Root)
}

// mapChildren copies kids through fn. A nil slice stays nil so an untouched
// tree compares equal to its input.
func mapChildren(kids []domain.Node, fn func(domain.Node) domain.Node) []domain.Node {
	if kids == nil {
		return nil
	}
	out := make([]domain.Node, len(kids))
	for i, child := range kids {
		out[i] = fn(child)
	}
	return out
}
