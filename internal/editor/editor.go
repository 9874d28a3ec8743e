// Package editor holds the current document root and exposes the handler
// surface through which every collaborator mutates it.
package editor

import (
	"sync"
	"time"

	"github.com/alexanderramin/tododoc/internal/action"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/google/uuid"
)

// Handlers is the mutation surface offered to the CLI, the TUI and the MCP
// server. Handlers return nothing; the result is observed through Root.
type Handlers interface {
	AddCategory()
	DeleteCategory(categoryID string)
	UpdateCategorySettings(categoryID, title, color string)
	AddSection(categoryID string)
	AddItemToCategory(categoryID string)
	AddItemToSection(sectionID string)
	ToggleSection(sectionID string)
	EditSection(sectionID, title string)
	DeleteSection(sectionID string)
	ToggleItem(itemID string)
	EditItem(itemID, title string, priority domain.Priority)
	DeleteItem(itemID string)
	AddSubtask(parentID string)
	ToggleSubtask(subtaskID string)
	EditSubtask(subtaskID, title string)
	DeleteSubtask(subtaskID string)
	AddNote(parentID string)
	EditNote(noteID, content string)
	DeleteNote(noteID string)
}

// Session is the handler surface plus read access to the result. Callers
// that chain handlers, such as "add then rename", use it to find the node
// they just created.
type Session interface {
	Handlers
	Root() *domain.Root
	LastCreatedID() string
}

var _ Session = (*Editor)(nil)

// Defaults are the field values given to newly created nodes.
type Defaults struct {
	CategoryTitle string
	CategoryColor string
	SectionTitle  string
	ItemTitle     string
	ItemPriority  domain.Priority
	SubtaskTitle  string
	NoteContent   string
}

// DefaultDefaults returns the built-in titles for new nodes.
func DefaultDefaults() Defaults {
	return Defaults{
		CategoryTitle: "새 카테고리",
		CategoryColor: "#6366f1",
		SectionTitle:  "새 섹션",
		ItemTitle:     "새 할일",
		ItemPriority:  domain.PriorityMedium,
		SubtaskTitle:  "새 서브태스크",
		NoteContent:   "새 노트",
	}
}

// Editor is the single authoritative holder of a document root. Every
// handler reads the current root at call time and replaces it with the
// reducer's result. An Editor is safe for concurrent use.
type Editor struct {
	mu       sync.Mutex
	root     *domain.Root
	reducer  action.Reducer
	defaults Defaults
	newID    func() string
	now      func() time.Time
	onApply  func(action.Action)
	lastID   string
}

// Option configures an Editor.
type Option func(*Editor)

// WithPolicy sets the completion policy used by the reducer.
func WithPolicy(p action.Policy) Option {
	return func(e *Editor) { e.reducer.Policy = p }
}

// WithDefaults overrides the values given to new nodes. Empty fields keep
// the built-in value.
func WithDefaults(d Defaults) Option {
	return func(e *Editor) { e.defaults = mergeDefaults(e.defaults, d) }
}

// WithIDGenerator replaces uuid generation, for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// WithClock replaces time.Now for item due dates.
func WithClock(fn func() time.Time) Option {
	return func(e *Editor) { e.now = fn }
}

// WithObserver registers fn to be called after every dispatched action.
func WithObserver(fn func(action.Action)) Option {
	return func(e *Editor) { e.onApply = fn }
}

// New returns an Editor holding root. A nil root starts an empty document.
func New(root *domain.Root, opts ...Option) *Editor {
	if root == nil {
		root = domain.NewRoot()
	}
	e := &Editor{
		root:     root,
		defaults: DefaultDefaults(),
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the current root. The returned tree is never modified by
// later handler calls.
func (e *Editor) Root() *domain.Root {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Replace swaps in a different root, e.g. after an import.
func (e *Editor) Replace(root *domain.Root) {
	if root == nil {
		root = domain.NewRoot()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = root
	e.lastID = ""
}

// LastCreatedID returns the id of the node created by the most recent add
// handler, or "" when that add did not land anywhere.
func (e *Editor) LastCreatedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastID
}

// Dispatch applies a to the current root.
func (e *Editor) Dispatch(a action.Action) {
	e.mu.Lock()
	e.root = e.reducer.Reduce(e.root, a)
	e.mu.Unlock()
	if e.onApply != nil {
		e.onApply(a)
	}
}

// create dispatches an add action and records the new node's id if it
// was attached.
func (e *Editor) create(id string, a action.Action) {
	e.mu.Lock()
	e.root = e.reducer.Reduce(e.root, a)
	e.lastID = ""
	if _, ok := tree.Find(e.root, id); ok {
		e.lastID = id
	}
	e.mu.Unlock()
	if e.onApply != nil {
		e.onApply(a)
	}
}

func (e *Editor) newItem() *domain.Item {
	due := e.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return &domain.Item{
		ID:       e.newID(),
		Title:    e.defaults.ItemTitle,
		Priority: e.defaults.ItemPriority,
		DueDate:  &due,
		Children: []domain.Node{},
	}
}

func (e *Editor) AddCategory() {
	c := &domain.Category{
		ID:       e.newID(),
		Title:    e.defaults.CategoryTitle,
		Color:    e.defaults.CategoryColor,
		Children: []domain.Node{},
	}
	e.create(c.ID, action.AddCategory{Category: c})
}

func (e *Editor) DeleteCategory(categoryID string) {
	e.Dispatch(action.DeleteCategory{CategoryID: categoryID})
}

func (e *Editor) UpdateCategorySettings(categoryID, title, color string) {
	e.Dispatch(action.UpdateCategorySettings{CategoryID: categoryID, Title: title, Color: color})
}

func (e *Editor) AddSection(categoryID string) {
	s := &domain.Section{ID: e.newID(), Title: e.defaults.SectionTitle, Children: []domain.Node{}}
	e.create(s.ID, action.AddSection{CategoryID: categoryID, Section: s})
}

func (e *Editor) AddItemToCategory(categoryID string) {
	it := e.newItem()
	e.create(it.ID, action.AddItemToCategory{CategoryID: categoryID, Item: it})
}

func (e *Editor) AddItemToSection(sectionID string) {
	it := e.newItem()
	e.create(it.ID, action.AddItemToSection{SectionID: sectionID, Item: it})
}

func (e *Editor) ToggleSection(sectionID string) {
	e.Dispatch(action.ToggleSection{SectionID: sectionID})
}

func (e *Editor) EditSection(sectionID, title string) {
	e.Dispatch(action.EditSection{SectionID: sectionID, Title: title})
}

func (e *Editor) DeleteSection(sectionID string) {
	e.Dispatch(action.DeleteSection{SectionID: sectionID})
}

func (e *Editor) ToggleItem(itemID string) {
	e.Dispatch(action.ToggleItem{ItemID: itemID})
}

func (e *Editor) EditItem(itemID, title string, priority domain.Priority) {
	e.Dispatch(action.EditItem{ItemID: itemID, Title: title, Priority: priority})
}

func (e *Editor) DeleteItem(itemID string) {
	e.Dispatch(action.DeleteItem{ItemID: itemID})
}

func (e *Editor) AddSubtask(parentID string) {
	s := &domain.Subtask{ID: e.newID(), Title: e.defaults.SubtaskTitle}
	e.create(s.ID, action.AddSubtask{ParentID: parentID, Subtask: s})
}

func (e *Editor) ToggleSubtask(subtaskID string) {
	e.Dispatch(action.ToggleSubtask{SubtaskID: subtaskID})
}

func (e *Editor) EditSubtask(subtaskID, title string) {
	e.Dispatch(action.EditSubtask{SubtaskID: subtaskID, Title: title})
}

func (e *Editor) DeleteSubtask(subtaskID string) {
	e.Dispatch(action.DeleteSubtask{SubtaskID: subtaskID})
}

func (e *Editor) AddNote(parentID string) {
	n := &domain.Note{ID: e.newID(), Content: e.defaults.NoteContent}
	e.create(n.ID, action.AddNote{ParentID: parentID, Note: n})
}

func (e *Editor) EditNote(noteID, content string) {
	e.Dispatch(action.EditNote{NoteID: noteID, Content: content})
}

func (e *Editor) DeleteNote(noteID string) {
	e.Dispatch(action.DeleteNote{NoteID: noteID})
}

// Merge returns d with every non-empty field of over applied.
func (d Defaults) Merge(over Defaults) Defaults {
	return mergeDefaults(d, over)
}

func mergeDefaults(base, over Defaults) Defaults {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Defaults{
		CategoryTitle: pick(base.CategoryTitle, over.CategoryTitle),
		CategoryColor: pick(base.CategoryColor, over.CategoryColor),
		SectionTitle:  pick(base.SectionTitle, over.SectionTitle),
		ItemTitle:     pick(base.ItemTitle, over.ItemTitle),
		ItemPriority:  domain.Priority(pick(string(base.ItemPriority), string(over.ItemPriority))),
		SubtaskTitle:  pick(base.SubtaskTitle, over.SubtaskTitle),
		NoteContent:   pick(base.NoteContent, over.NoteContent),
	}
}
