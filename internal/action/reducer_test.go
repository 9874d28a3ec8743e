package action

import (
	"testing"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *domain.Root {
	return domain.NewRoot(
		&domain.Category{ID: "cat-1", Title: "업무", Color: "#10b981", Children: []domain.Node{}},
		&domain.Category{ID: "cat-2", Title: "개인", Color: "#6366f1", Children: []domain.Node{
			&domain.Item{ID: "todo-1", Title: "운동하기", Priority: domain.PriorityMedium, Children: []domain.Node{
				&domain.Subtask{ID: "subtask-1", Title: "스트레칭", Completed: true},
				&domain.Subtask{ID: "subtask-2", Title: "러닝"},
				&domain.Note{ID: "note-1", Content: "아침"},
			}},
			&domain.Section{ID: "section-1", Title: "리뷰 대기", Children: []domain.Node{
				&domain.Subtask{ID: "subtask-3", Title: "확인"},
			}},
		}},
	)
}

func find(t *testing.T, root *domain.Root, id string) domain.Node {
	t.Helper()
	n, ok := tree.Find(root, id)
	require.True(t, ok, "node %s not found", id)
	return n
}

func TestReduce_AddSectionThenDelete(t *testing.T) {
	r := Reducer{}
	root := fixture()

	sec := &domain.Section{ID: "new-section", Title: "새 섹션"}
	root = r.Reduce(root, AddSection{CategoryID: "cat-1", Section: sec})

	cat := find(t, root, "cat-1").(*domain.Category)
	require.Len(t, cat.Children, 1)
	got := cat.Children[0].(*domain.Section)
	assert.Equal(t, domain.KindSection, got.Kind())
	assert.False(t, got.Collapsed)
	assert.Equal(t, "새 섹션", got.Title)

	root = r.Reduce(root, DeleteSection{SectionID: "new-section"})
	cat = find(t, root, "cat-1").(*domain.Category)
	assert.Empty(t, cat.Children)
	assert.Equal(t, "cat-1", cat.ID)
	assert.True(t, tree.Equal(fixture(), root))
}

func TestReduce_AddCategoryAppendsToRoot(t *testing.T) {
	root := fixture()
	got := Reducer{}.Reduce(root, AddCategory{Category: &domain.Category{ID: "cat-3", Title: "학습"}})

	require.Len(t, got.Children, 3)
	assert.Equal(t, "cat-3", got.Children[2].NodeID())
	assert.Len(t, root.Children, 2)
}

func TestReduce_CategorySettings(t *testing.T) {
	got := Reducer{}.Reduce(fixture(), UpdateCategorySettings{CategoryID: "cat-2", Title: "집", Color: "#ef4444"})
	c := find(t, got, "cat-2").(*domain.Category)
	assert.Equal(t, "집", c.Title)
	assert.Equal(t, "#ef4444", c.Color)
	assert.Len(t, c.Children, 2)
}

func TestReduce_DeleteCategory(t *testing.T) {
	got := Reducer{}.Reduce(fixture(), DeleteCategory{CategoryID: "cat-2"})
	require.Len(t, got.Children, 1)
	_, ok := tree.Find(got, "subtask-1")
	assert.False(t, ok)
}

func TestReduce_ToggleSection(t *testing.T) {
	r := Reducer{}
	root := r.Reduce(fixture(), ToggleSection{SectionID: "section-1"})
	assert.True(t, find(t, root, "section-1").(*domain.Section).Collapsed)

	root = r.Reduce(root, ToggleSection{SectionID: "section-1"})
	assert.False(t, find(t, root, "section-1").(*domain.Section).Collapsed)
}

func TestReduce_ItemLifecycle(t *testing.T) {
	r := Reducer{}
	root := r.Reduce(fixture(), AddItemToCategory{
		CategoryID: "cat-1",
		Item:       &domain.Item{ID: "todo-9", Title: "새 할일", Priority: domain.PriorityMedium},
	})
	root = r.Reduce(root, EditItem{ItemID: "todo-9", Title: "보고서", Priority: domain.PriorityHigh})
	root = r.Reduce(root, ToggleItem{ItemID: "todo-9"})

	it := find(t, root, "todo-9").(*domain.Item)
	assert.Equal(t, "보고서", it.Title)
	assert.Equal(t, domain.PriorityHigh, it.Priority)
	assert.True(t, it.Completed)

	root = r.Reduce(root, DeleteItem{ItemID: "todo-9"})
	_, ok := tree.Find(root, "todo-9")
	assert.False(t, ok)
}

func TestReduce_AddItemToSection(t *testing.T) {
	got := Reducer{}.Reduce(fixture(), AddItemToSection{SectionID: "section-1", Item: &domain.Item{ID: "todo-9"}})
	sec := find(t, got, "section-1").(*domain.Section)
	require.Len(t, sec.Children, 2)
	assert.Equal(t, "todo-9", sec.Children[1].NodeID())
}

func TestReduce_SubtaskAndNoteLifecycle(t *testing.T) {
	r := Reducer{}
	root := r.Reduce(fixture(), AddSubtask{ParentID: "section-1", Subtask: &domain.Subtask{ID: "s9", Title: "a"}})
	root = r.Reduce(root, EditSubtask{SubtaskID: "s9", Title: "b"})
	root = r.Reduce(root, ToggleSubtask{SubtaskID: "s9"})
	s := find(t, root, "s9").(*domain.Subtask)
	assert.Equal(t, "b", s.Title)
	assert.True(t, s.Completed)

	root = r.Reduce(root, AddNote{ParentID: "todo-1", Note: &domain.Note{ID: "n9", Content: "x"}})
	root = r.Reduce(root, EditNote{NoteID: "n9", Content: "y"})
	assert.Equal(t, "y", find(t, root, "n9").(*domain.Note).Content)

	root = r.Reduce(root, DeleteNote{NoteID: "n9"})
	root = r.Reduce(root, DeleteSubtask{SubtaskID: "s9"})
	assert.True(t, tree.Equal(fixture(), root))
}

func TestReduce_EditSection(t *testing.T) {
	got := Reducer{}.Reduce(fixture(), EditSection{SectionID: "section-1", Title: "완료"})
	assert.Equal(t, "완료", find(t, got, "section-1").(*domain.Section).Title)
}

func TestReduce_KindMismatchIsNoop(t *testing.T) {
	root := fixture()
	r := Reducer{}

	assert.Equal(t, root, r.Reduce(root, ToggleSection{SectionID: "todo-1"}))
	assert.Equal(t, root, r.Reduce(root, EditNote{NoteID: "subtask-1", Content: "x"}))
	assert.Equal(t, root, r.Reduce(root, UpdateCategorySettings{CategoryID: "section-1", Title: "x"}))
}

func TestReduce_MissingIDIsNoop(t *testing.T) {
	root := fixture()
	r := Reducer{}
	for _, a := range []Action{
		ToggleItem{ItemID: "nope"},
		DeleteSection{SectionID: "nope"},
		AddNote{ParentID: "nope", Note: &domain.Note{ID: "n"}},
	} {
		assert.Equal(t, root, r.Reduce(root, a), a.Name())
	}
}

func TestReduce_NilAndNilPayloads(t *testing.T) {
	root := fixture()
	r := Reducer{}
	assert.Same(t, root, r.Reduce(root, nil))
	assert.Same(t, root, r.Reduce(root, AddCategory{}))
	assert.Same(t, root, r.Reduce(root, AddNote{ParentID: "todo-1"}))
	assert.Same(t, root, r.Reduce(root, AddItemToCategory{CategoryID: "cat-1", Item: (*domain.Item)(nil)}))
}

func TestReduce_NilRoot(t *testing.T) {
	got := Reducer{}.Reduce(nil, AddCategory{Category: &domain.Category{ID: "c"}})
	require.Len(t, got.Children, 1)
}

func TestReduce_InputNeverMutated(t *testing.T) {
	root := fixture()
	r := Reducer{Policy: PolicyRollup}
	actions := []Action{
		ToggleSubtask{SubtaskID: "subtask-2"},
		ToggleItem{ItemID: "todo-1"},
		EditItem{ItemID: "todo-1", Title: "x", Priority: domain.PriorityLow},
		ToggleSection{SectionID: "section-1"},
		DeleteSubtask{SubtaskID: "subtask-1"},
	}
	for _, a := range actions {
		r.Reduce(root, a)
	}
	assert.Equal(t, fixture(), root)
}

func TestActionNames(t *testing.T) {
	all := []Action{
		ToggleSection{}, AddItemToSection{}, AddCategory{}, DeleteCategory{},
		UpdateCategorySettings{}, AddItemToCategory{}, ToggleItem{}, AddSubtask{},
		AddSection{}, AddNote{}, EditItem{}, EditSection{}, DeleteItem{},
		DeleteSection{}, ToggleSubtask{}, EditSubtask{}, DeleteSubtask{},
		EditNote{}, DeleteNote{},
	}
	seen := make(map[string]bool)
	for _, a := range all {
		assert.NotEmpty(t, a.Name())
		assert.False(t, seen[a.Name()], "duplicate name %s", a.Name())
		seen[a.Name()] = true
	}
	assert.Len(t, seen, 19)
}

func TestTargetID(t *testing.T) {
	assert.Equal(t, "cat-1", TargetID(AddSection{CategoryID: "cat-1"}))
	assert.Equal(t, "n", TargetID(DeleteNote{NoteID: "n"}))
	assert.Equal(t, "", TargetID(AddCategory{}))
}
