package action

import (
	"testing"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRollup_ToggleLastSubtaskCompletesItem(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	got := r.Reduce(fixture(), ToggleSubtask{SubtaskID: "subtask-2"})

	assert.True(t, find(t, got, "subtask-2").(*domain.Subtask).Completed)
	assert.True(t, find(t, got, "todo-1").(*domain.Item).Completed)
}

func TestIndependent_ToggleSubtaskLeavesItem(t *testing.T) {
	got := Reducer{}.Reduce(fixture(), ToggleSubtask{SubtaskID: "subtask-2"})

	assert.True(t, find(t, got, "subtask-2").(*domain.Subtask).Completed)
	assert.False(t, find(t, got, "todo-1").(*domain.Item).Completed)
}

func TestRollup_UntoggleReopensItem(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	root := r.Reduce(fixture(), ToggleSubtask{SubtaskID: "subtask-2"})
	root = r.Reduce(root, ToggleSubtask{SubtaskID: "subtask-1"})

	assert.False(t, find(t, root, "todo-1").(*domain.Item).Completed)
}

func TestRollup_ToggleItemCascades(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	root := r.Reduce(fixture(), ToggleItem{ItemID: "todo-1"})

	assert.True(t, find(t, root, "todo-1").(*domain.Item).Completed)
	assert.True(t, find(t, root, "subtask-1").(*domain.Subtask).Completed)
	assert.True(t, find(t, root, "subtask-2").(*domain.Subtask).Completed)

	root = r.Reduce(root, ToggleItem{ItemID: "todo-1"})
	assert.False(t, find(t, root, "todo-1").(*domain.Item).Completed)
	assert.False(t, find(t, root, "subtask-1").(*domain.Subtask).Completed)
}

func TestRollup_DeleteIncompleteSubtaskCompletesItem(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	root := r.Reduce(fixture(), DeleteSubtask{SubtaskID: "subtask-2"})
	assert.True(t, find(t, root, "todo-1").(*domain.Item).Completed)
}

func TestRollup_AddingSubtaskReopensItem(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	root := r.Reduce(fixture(), ToggleItem{ItemID: "todo-1"})
	root = r.Reduce(root, AddSubtask{ParentID: "todo-1", Subtask: &domain.Subtask{ID: "s9"}})
	assert.False(t, find(t, root, "todo-1").(*domain.Item).Completed)
}

func TestRollup_ChildlessItemKeepsFlag(t *testing.T) {
	root := domain.NewRoot(&domain.Category{ID: "c", Children: []domain.Node{
		&domain.Item{ID: "i", Completed: true, Children: []domain.Node{&domain.Note{ID: "n"}}},
	}})
	got := Rollup(root)
	assert.Same(t, root, got)
	assert.True(t, find(t, got, "i").(*domain.Item).Completed)

	got = Reducer{Policy: PolicyRollup}.Reduce(root, DeleteNote{NoteID: "n"})
	assert.True(t, find(t, got, "i").(*domain.Item).Completed)
}

func TestRollup_SectionsAreNotDerived(t *testing.T) {
	r := Reducer{Policy: PolicyRollup}
	root := r.Reduce(fixture(), ToggleSubtask{SubtaskID: "subtask-3"})
	assert.True(t, find(t, root, "subtask-3").(*domain.Subtask).Completed)
	assert.False(t, find(t, root, "section-1").(*domain.Section).Collapsed)
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("")
	assert.True(t, ok)
	assert.Equal(t, PolicyIndependent, p)

	p, ok = ParsePolicy("rollup")
	assert.True(t, ok)
	assert.Equal(t, PolicyRollup, p)

	_, ok = ParsePolicy("auto")
	assert.False(t, ok)
}
