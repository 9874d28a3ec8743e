package domain

// Node is one element of a to-do document tree. The interface is sealed:
// only the six node types in this package implement it.
type Node interface {
	Kind() Kind
	// NodeID returns the stable identifier, or "" for the root.
	NodeID() string
	node()
}

// Container is a node that owns an ordered children sequence.
type Container interface {
	Node
	Kids() []Node
	// WithChildren returns a shallow copy of the node carrying children.
	WithChildren(children []Node) Container
}

// Root is the single un-identified top-level container. Its children are
// categories.
type Root struct {
	Children []Node
}

// Category groups items and sections under a colored title.
type Category struct {
	ID       string
	Title    string
	Color    string
	Children []Node
}

// Section is a collapsible group inside a category.
type Section struct {
	ID        string
	Title     string
	Collapsed bool
	Children  []Node
}

// Item is a single to-do entry.
type Item struct {
	ID        string
	Title     string
	Completed bool
	Priority  Priority
	DueDate   *string // ISO-8601 date or timestamp, nil when unset
	Children  []Node
}

// Subtask is a checkable leaf under an item or section.
type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

// Note is a free-text leaf.
type Note struct {
	ID      string
	Content string
}

func (*Root) Kind() Kind     { return KindRoot }
func (*Category) Kind() Kind { return KindCategory }
func (*Section) Kind() Kind  { return KindSection }
func (*Item) Kind() Kind     { return KindItem }
func (*Subtask) Kind() Kind  { return KindSubtask }
func (*Note) Kind() Kind     { return KindNote }

func (*Root) NodeID() string       { return "" }
func (c *Category) NodeID() string { return c.ID }
func (s *Section) NodeID() string  { return s.ID }
func (i *Item) NodeID() string     { return i.ID }
func (s *Subtask) NodeID() string  { return s.ID }
func (n *Note) NodeID() string     { return n.ID }

func (*Root) node()     {}
func (*Category) node() {}
func (*Section) node()  {}
func (*Item) node()     {}
func (*Subtask) node()  {}
func (*Note) node()     {}

func (r *Root) Kids() []Node     { return r.Children }
func (c *Category) Kids() []Node { return c.Children }
func (s *Section) Kids() []Node  { return s.Children }
func (i *Item) Kids() []Node     { return i.Children }

func (r *Root) WithChildren(children []Node) Container {
	cp := *r
	cp.Children = children
	return &cp
}

func (c *Category) WithChildren(children []Node) Container {
	cp := *c
	cp.Children = children
	return &cp
}

func (s *Section) WithChildren(children []Node) Container {
	cp := *s
	cp.Children = children
	return &cp
}

func (i *Item) WithChildren(children []Node) Container {
	cp := *i
	cp.Children = children
	return &cp
}

// allowedChildren is the parent/child kind table of the document model.
var allowedChildren = map[Kind]map[Kind]bool{
	KindRoot:     {KindCategory: true},
	KindCategory: {KindItem: true, KindSection: true},
	KindSection:  {KindItem: true, KindNote: true, KindSubtask: true},
	KindItem:     {KindSubtask: true, KindNote: true},
}

// CanContain reports whether a node of kind parent may hold a child of kind
// child. Leaves (subtask, note) contain nothing.
func CanContain(parent, child Kind) bool {
	return allowedChildren[parent][child]
}

// NewRoot returns an empty document root.
func NewRoot(categories ...*Category) *Root {
	children := make([]Node, 0, len(categories))
	for _, c := range categories {
		children = append(children, c)
	}
	return &Root{Children: children}
}
