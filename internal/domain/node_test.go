package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanContain_Table(t *testing.T) {
	allowed := map[Kind][]Kind{
		KindRoot:     {KindCategory},
		KindCategory: {KindItem, KindSection},
		KindSection:  {KindItem, KindNote, KindSubtask},
		KindItem:     {KindSubtask, KindNote},
	}
	for parent := range ValidKinds {
		for child := range ValidKinds {
			want := false
			for _, k := range allowed[parent] {
				if k == child {
					want = true
				}
			}
			assert.Equal(t, want, CanContain(parent, child), "%s -> %s", parent, child)
		}
	}
}

func TestCanContain_LeavesHoldNothing(t *testing.T) {
	for child := range ValidKinds {
		assert.False(t, CanContain(KindSubtask, child))
		assert.False(t, CanContain(KindNote, child))
	}
}

func TestNodeID_RootIsEmpty(t *testing.T) {
	assert.Equal(t, "", NewRoot().NodeID())
	assert.Equal(t, "cat-1", (&Category{ID: "cat-1"}).NodeID())
	assert.Equal(t, "n", (&Note{ID: "n"}).NodeID())
}

func TestWithChildren_ShallowCopy(t *testing.T) {
	orig := &Item{ID: "todo-1", Title: "운동하기", Priority: PriorityHigh}
	kids := []Node{&Subtask{ID: "s1"}}

	cp := orig.WithChildren(kids)

	require.IsType(t, &Item{}, cp)
	assert.Nil(t, orig.Children, "original must not change")
	assert.Equal(t, "운동하기", cp.(*Item).Title)
	assert.Len(t, cp.Kids(), 1)
	assert.NotSame(t, orig, cp)
}

func TestNewRoot_EmptyHasNonNilChildren(t *testing.T) {
	r := NewRoot()
	assert.NotNil(t, r.Children)
	assert.Empty(t, r.Children)

	r = NewRoot(&Category{ID: "a"}, &Category{ID: "b"})
	require.Len(t, r.Children, 2)
	assert.Equal(t, "b", r.Children[1].NodeID())
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "category", KindCategory.Label())
	assert.Equal(t, "subtask", KindSubtask.Label())
	assert.Equal(t, "Bogus", Kind("Bogus").Label())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("low")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, p)

	_, err = ParsePriority("urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high|medium|low")
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, m)

	m, err = ParseFilterMode("completed")
	require.NoError(t, err)
	assert.Equal(t, FilterCompleted, m)

	_, err = ParseFilterMode("done")
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"default", "work-2025", "a", "my_list"} {
		d := &Document{Name: name}
		assert.NoError(t, d.ValidateName(), "should accept %q", name)
	}
	for _, name := range []string{"", "Work", "-x", "has space", "ü"} {
		d := &Document{Name: name}
		assert.Error(t, d.ValidateName(), "should reject %q", name)
	}
}

func TestDocumentDisplayID(t *testing.T) {
	d := &Document{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", d.DisplayID())
	d = &Document{ID: "abc"}
	assert.Equal(t, "abc", d.DisplayID())
}
