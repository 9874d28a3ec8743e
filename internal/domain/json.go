package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrUnknownKind is returned when a serialized node carries a type tag
// outside the closed set of node kinds.
var ErrUnknownKind = errors.New("unrecognized node kind")

type rootJSON struct {
	Type     Kind   `json:"type"`
	Children []Node `json:"children"`
}

// The *Fields structs hold every serialized field except the discriminator
// and children; they are embedded for encoding and decoded on their own.
type categoryFields struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type sectionFields struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Collapsed bool   `json:"collapsed"`
}

type itemFields struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	DueDate   *string  `json:"dueDate,omitempty"`
}

type subtaskFields struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type noteFields struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type categoryJSON struct {
	Type Kind `json:"type"`
	categoryFields
	Children []Node `json:"children"`
}

type sectionJSON struct {
	Type Kind `json:"type"`
	sectionFields
	Children []Node `json:"children"`
}

type itemJSON struct {
	Type Kind `json:"type"`
	itemFields
	Children []Node `json:"children"`
}

type subtaskJSON struct {
	Type Kind `json:"type"`
	subtaskFields
}

type noteJSON struct {
	Type Kind `json:"type"`
	noteFields
}

// containerJSON receives the children of any container before they are
// decoded one by one.
type containerJSON struct {
	Children []json.RawMessage `json:"children"`
}

// nonNil keeps "children": [] in the output for empty containers.
func nonNil(children []Node) []Node {
	if children == nil {
		return []Node{}
	}
	return children
}

func (r *Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(rootJSON{Type: KindRoot, Children: nonNil(r.Children)})
}

func (c *Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(categoryJSON{
		Type:           KindCategory,
		categoryFields: categoryFields{ID: c.ID, Title: c.Title, Color: c.Color},
		Children:       nonNil(c.Children),
	})
}

func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(sectionJSON{
		Type:          KindSection,
		sectionFields: sectionFields{ID: s.ID, Title: s.Title, Collapsed: s.Collapsed},
		Children:      nonNil(s.Children),
	})
}

func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Type: KindItem,
		itemFields: itemFields{
			ID: i.ID, Title: i.Title, Completed: i.Completed,
			Priority: i.Priority, DueDate: i.DueDate,
		},
		Children: nonNil(i.Children),
	})
}

func (s *Subtask) MarshalJSON() ([]byte, error) {
	return json.Marshal(subtaskJSON{
		Type:          KindSubtask,
		subtaskFields: subtaskFields{ID: s.ID, Title: s.Title, Completed: s.Completed},
	})
}

func (n *Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(noteJSON{
		Type:       KindNote,
		noteFields: noteFields{ID: n.ID, Content: n.Content},
	})
}

// UnmarshalJSON decodes a serialized root, rejecting any other top-level kind.
func (r *Root) UnmarshalJSON(data []byte) error {
	n, err := DecodeNode(data)
	if err != nil {
		return err
	}
	root, ok := n.(*Root)
	if !ok {
		return fmt.Errorf("expected %s at top level, got %s", KindRoot, n.Kind())
	}
	*r = *root
	return nil
}

// DecodeNode decodes one serialized node and its subtree, dispatching on the
// "type" discriminator.
func DecodeNode(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decoding node: invalid JSON")
	}
	tag := Kind(gjson.GetBytes(data, "type").String())

	switch tag {
	case KindRoot:
		children, err := decodeChildren(data)
		if err != nil {
			return nil, err
		}
		return &Root{Children: children}, nil

	case KindCategory:
		var f categoryFields
		if err := decodeFields(tag, data, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(data)
		if err != nil {
			return nil, err
		}
		return &Category{ID: f.ID, Title: f.Title, Color: f.Color, Children: children}, nil

	case KindSection:
		var f sectionFields
		if err := decodeFields(tag, data, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(data)
		if err != nil {
			return nil, err
		}
		return &Section{ID: f.ID, Title: f.Title, Collapsed: f.Collapsed, Children: children}, nil

	case KindItem:
		var f itemFields
		if err := decodeFields(tag, data, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(data)
		if err != nil {
			return nil, err
		}
		return &Item{
			ID: f.ID, Title: f.Title, Completed: f.Completed,
			Priority: f.Priority, DueDate: f.DueDate, Children: children,
		}, nil

	case KindSubtask:
		var f subtaskFields
		if err := decodeFields(tag, data, &f); err != nil {
			return nil, err
		}
		return &Subtask{ID: f.ID, Title: f.Title, Completed: f.Completed}, nil

	case KindNote:
		var f noteFields
		if err := decodeFields(tag, data, &f); err != nil {
			return nil, err
		}
		return &Note{ID: f.ID, Content: f.Content}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(tag))
	}
}

func decodeFields(tag Kind, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", tag, err)
	}
	return nil
}

func decodeChildren(data []byte) ([]Node, error) {
	var c containerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding children: %w", err)
	}
	children := make([]Node, 0, len(c.Children))
	for i, raw := range c.Children {
		child, err := DecodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}
