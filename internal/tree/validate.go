package tree

import (
	"fmt"
	"reflect"

	"github.com/alexanderramin/tododoc/internal/domain"
)

// Violation describes one structural problem found by Validate.
type Violation struct {
	NodeID string
	Msg    string
}

func (v Violation) Error() string {
	if v.NodeID == "" {
		return v.Msg
	}
	return fmt.Sprintf("%s: %s", v.NodeID, v.Msg)
}

// Validate checks the structural invariants of a decoded document: child
// kinds allowed by their parent, non-empty ids and globally unique ids.
// It returns every violation found, in pre-order.
func Validate(root *domain.Root) []Violation {
	var out []Violation
	seen := make(map[string]bool)

	var visit func(n domain.Node)
	visit = func(n domain.Node) {
		if n.Kind() != domain.KindRoot {
			id := n.NodeID()
			switch {
			case id == "":
				out = append(out, Violation{Msg: fmt.Sprintf("%s has an empty id", n.Kind().Label())})
			case seen[id]:
				out = append(out, Violation{NodeID: id, Msg: "duplicate id"})
			default:
				seen[id] = true
			}
		}
		c, ok := n.(domain.Container)
		if !ok {
			return
		}
		for _, child := range c.Kids() {
			if child == nil {
				out = append(out, Violation{NodeID: n.NodeID(), Msg: "nil child"})
				continue
			}
			if !domain.CanContain(n.Kind(), child.Kind()) {
				out = append(out, Violation{
					NodeID: child.NodeID(),
					Msg:    fmt.Sprintf("%s cannot be a child of %s", child.Kind().Label(), n.Kind().Label()),
				})
			}
			visit(child)
		}
	}
	visit(root)
	return out
}

// Equal reports whether a and b are structurally identical. A nil children
// slice and an empty one are considered equal.
func Equal(a, b domain.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	ca, aIsContainer := a.(domain.Container)
	cb, _ := b.(domain.Container)
	if !aIsContainer {
		return reflect.DeepEqual(a, b)
	}
	ka, kb := ca.Kids(), cb.Kids()
	if len(ka) != len(kb) {
		return false
	}
	if !reflect.DeepEqual(ca.WithChildren(nil), cb.WithChildren(nil)) {
		return false
	}
	for i := range ka {
		if !Equal(ka[i], kb[i]) {
			return false
		}
	}
	return true
}
