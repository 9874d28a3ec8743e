package editor

import (
	"testing"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategoryWith(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	id := AddCategoryWith(e, "Errands", "#ef4444")
	require.NotEmpty(t, id)

	c := mustFind[*domain.Category](t, e, id)
	assert.Equal(t, "Errands", c.Title)
	assert.Equal(t, "#ef4444", c.Color)
}

func TestAddCategoryWith_EmptyKeepsDefaults(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	id := AddCategoryWith(e, "", "")
	c := mustFind[*domain.Category](t, e, id)
	assert.Equal(t, DefaultDefaults().CategoryTitle, c.Title)
	assert.Equal(t, DefaultDefaults().CategoryColor, c.Color)
}

func TestAddItemWith_DispatchesOnParentKind(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	catID := AddCategoryWith(e, "Work", "")
	secID := AddSectionWith(e, catID, "Backlog")

	direct := AddItemWith(e, catID, "Ship", domain.PriorityHigh)
	nested := AddItemWith(e, secID, "Plan", "")
	require.NotEmpty(t, direct)
	require.NotEmpty(t, nested)

	it := mustFind[*domain.Item](t, e, direct)
	assert.Equal(t, "Ship", it.Title)
	assert.Equal(t, domain.PriorityHigh, it.Priority)

	sec := mustFind[*domain.Section](t, e, secID)
	require.Len(t, sec.Children, 1)
	assert.Equal(t, nested, sec.Children[0].NodeID())
	assert.Equal(t, DefaultDefaults().ItemPriority, sec.Children[0].(*domain.Item).Priority)
}

func TestAddItemWith_BadParent(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	assert.Empty(t, AddItemWith(e, "missing", "x", ""))

	catID := AddCategoryWith(e, "", "")
	itemID := AddItemWith(e, catID, "", "")
	assert.Empty(t, AddItemWith(e, itemID, "nested", ""))
}

func TestAddSubtaskAndNoteWith(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	catID := AddCategoryWith(e, "", "")
	itemID := AddItemWith(e, catID, "", "")

	subID := AddSubtaskWith(e, itemID, "step one")
	noteID := AddNoteWith(e, itemID, "remember")

	assert.Equal(t, "step one", mustFind[*domain.Subtask](t, e, subID).Title)
	assert.Equal(t, "remember", mustFind[*domain.Note](t, e, noteID).Content)
}

func TestEditItemFields_KeepsUnsetFields(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	catID := AddCategoryWith(e, "", "")
	itemID := AddItemWith(e, catID, "Before", domain.PriorityLow)

	EditItemFields(e, itemID, "", domain.PriorityHigh)
	it := mustFind[*domain.Item](t, e, itemID)
	assert.Equal(t, "Before", it.Title)
	assert.Equal(t, domain.PriorityHigh, it.Priority)

	EditItemFields(e, itemID, "After", "")
	it = mustFind[*domain.Item](t, e, itemID)
	assert.Equal(t, "After", it.Title)
	assert.Equal(t, domain.PriorityHigh, it.Priority)
}

func TestEditCategory_WrongKindIgnored(t *testing.T) {
	e := newTestEditor(domain.NewRoot())
	catID := AddCategoryWith(e, "", "")
	itemID := AddItemWith(e, catID, "", "")
	before := e.Root()

	EditCategory(e, itemID, "nope", "#000000")
	assert.Equal(t, before, e.Root())
}

func TestDefaultsMerge(t *testing.T) {
	got := DefaultDefaults().Merge(Defaults{ItemTitle: "Task", ItemPriority: domain.PriorityLow})
	assert.Equal(t, "Task", got.ItemTitle)
	assert.Equal(t, domain.PriorityLow, got.ItemPriority)
	assert.Equal(t, DefaultDefaults().CategoryTitle, got.CategoryTitle)
}
