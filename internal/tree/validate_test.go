package tree

import (
	"testing"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanTree(t *testing.T) {
	assert.Empty(t, Validate(fixture()))
}

func TestValidate_ReportsViolations(t *testing.T) {
	root := domain.NewRoot(
		&domain.Category{ID: "c", Children: []domain.Node{
			&domain.Note{ID: "n"},
			&domain.Item{ID: "c"},
			&domain.Item{ID: ""},
			nil,
		}},
	)

	v := Validate(root)
	require.Len(t, v, 4)
	assert.Equal(t, "n", v[0].NodeID)
	assert.Contains(t, v[0].Error(), "note cannot be a child of category")
	assert.Equal(t, "c: duplicate id", v[1].Error())
	assert.Contains(t, v[2].Error(), "item has an empty id")
	assert.Equal(t, "c: nil child", v[3].Error())
}

func TestEqual_NilAndEmptyChildren(t *testing.T) {
	a := &domain.Item{ID: "i", Title: "t"}
	b := &domain.Item{ID: "i", Title: "t", Children: []domain.Node{}}
	assert.True(t, Equal(a, b))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestEqual_DetectsDifferences(t *testing.T) {
	a := fixture()
	b := fixture()
	assert.True(t, Equal(a, b))

	b.Children[0].(*domain.Category).Children[1].(*domain.Item).Title = "changed"
	assert.False(t, Equal(a, b))

	assert.False(t, Equal(&domain.Note{ID: "x"}, &domain.Subtask{ID: "x"}))
}
