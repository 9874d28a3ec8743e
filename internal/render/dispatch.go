// Package render maps each node kind to a kind-specific operation.
//
// A Renderer[T] supplies one method per node kind; Render picks the method
// matching the node's concrete type. Result types are chosen by the caller:
// text, outline rows, counters.
package render

import (
	"fmt"
	"iter"

	"github.com/alexanderramin/tododoc/internal/domain"
)

// Renderer turns each node kind into a T.
type Renderer[T any] interface {
	RenderRoot(*domain.Root) T
	RenderCategory(*domain.Category) T
	RenderSection(*domain.Section) T
	RenderItem(*domain.Item) T
	RenderSubtask(*domain.Subtask) T
	RenderNote(*domain.Note) T
}

// UnknownKindError is the panic value raised when dispatch meets a node
// outside the six known kinds. It indicates a corrupted tree.
type UnknownKindError struct {
	Kind domain.Kind
	Type string
}

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("unrecognized node kind: %s", e.Type)
	}
	return fmt.Sprintf("unrecognized node kind: %q (%s)", string(e.Kind), e.Type)
}

func (e *UnknownKindError) Unwrap() error { return domain.ErrUnknownKind }

// Render dispatches n to the matching method of r. It panics with
// *UnknownKindError for a nil node or a foreign Node implementation.
func Render[T any](r Renderer[T], n domain.Node) T {
	switch v := n.(type) {
	case *domain.Root:
		return r.RenderRoot(v)
	case *domain.Category:
		return r.RenderCategory(v)
	case *domain.Section:
		return r.RenderSection(v)
	case *domain.Item:
		return r.RenderItem(v)
	case *domain.Subtask:
		return r.RenderSubtask(v)
	case *domain.Note:
		return r.RenderNote(v)
	case nil:
		panic(&UnknownKindError{Type: "<nil>"})
	default:
		panic(&UnknownKindError{Kind: n.Kind(), Type: fmt.Sprintf("%T", n)})
	}
}

// RenderChildren renders every child in order.
func RenderChildren[T any](r Renderer[T], children []domain.Node) []T {
	out := make([]T, 0, len(children))
	for _, child := range children {
		out = append(out, Render(r, child))
	}
	return out
}

// Each yields the rendering of each child lazily, in order.
func Each[T any](r Renderer[T], children []domain.Node) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, child := range children {
			if !yield(Render(r, child)) {
				return
			}
		}
	}
}
