package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `{
  "type": "TodoRoot",
  "children": [
    {"type": "TodoCategory", "id": "c1", "title": "Home", "color": "#fff", "children": [
      {"type": "TodoItem", "id": "i1", "title": "Dishes", "completed": false, "priority": "low", "children": []}
    ]}
  ]
}`

func joinErrs(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func TestValidateJSON_Minimal(t *testing.T) {
	assert.Empty(t, ValidateJSON([]byte(minimalDoc)))
}

func TestValidateJSON_EmptyRoot(t *testing.T) {
	assert.Empty(t, ValidateJSON([]byte(`{"type":"TodoRoot","children":[]}`)))
}

func TestValidateJSON_NotJSON(t *testing.T) {
	errs := ValidateJSON([]byte(`{"type":`))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "parsing document")
}

func TestValidateJSON_BadPriority(t *testing.T) {
	doc := strings.Replace(minimalDoc, `"priority": "low"`, `"priority": "urgent"`, 1)
	errs := ValidateJSON([]byte(doc))
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrs(errs), "/children/0/children/0/priority")
}

func TestValidateJSON_MissingField(t *testing.T) {
	doc := strings.Replace(minimalDoc, `"color": "#fff", `, "", 1)
	errs := ValidateJSON([]byte(doc))
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrs(errs), "/children/0")
}

func TestValidateJSON_WrongChildKind(t *testing.T) {
	doc := `{"type":"TodoRoot","children":[
	  {"type":"TodoCategory","id":"c1","title":"x","color":"#000","children":[
	    {"type":"TodoNote","id":"n1","content":"notes belong under items"}
	  ]}
	]}`
	errs := ValidateJSON([]byte(doc))
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrs(errs), "/children/0/children/0")
}

func TestValidateJSON_BadDueDate(t *testing.T) {
	doc := strings.Replace(minimalDoc, `"priority": "low",`, `"priority": "low", "dueDate": "next week",`, 1)
	errs := ValidateJSON([]byte(doc))
	require.NotEmpty(t, errs)
	assert.Contains(t, joinErrs(errs), "dueDate")
}

func TestValidateJSON_AcceptsTimestampDueDate(t *testing.T) {
	doc := strings.Replace(minimalDoc, `"priority": "low",`, `"priority": "low", "dueDate": "2025-01-15T00:30:00.000Z",`, 1)
	assert.Empty(t, ValidateJSON([]byte(doc)))
}

func TestParse_Minimal(t *testing.T) {
	root, err := Parse([]byte(minimalDoc))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	n, ok := tree.Find(root, "i1")
	require.True(t, ok)
	item := n.(*domain.Item)
	assert.Equal(t, "Dishes", item.Title)
	assert.Equal(t, domain.PriorityLow, item.Priority)
}

func TestParse_DuplicateIDs(t *testing.T) {
	doc := `{"type":"TodoRoot","children":[
	  {"type":"TodoCategory","id":"dup","title":"a","color":"#000","children":[]},
	  {"type":"TodoCategory","id":"dup","title":"b","color":"#000","children":[]}
	]}`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Errs, 1)
	assert.Contains(t, invalid.Errs[0].Error(), "duplicate id")
}

func TestParse_SchemaErrorsAreCollected(t *testing.T) {
	doc := `{"type":"TodoRoot","children":[
	  {"type":"TodoCategory","id":"c1","title":"a","color":"#000","children":[
	    {"type":"TodoItem","id":"i1","title":"t","completed":"no","priority":"urgent","children":[]}
	  ]}
	]}`
	_, err := Parse([]byte(doc))

	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.GreaterOrEqual(t, len(invalid.Errs), 2)
	assert.Contains(t, err.Error(), "invalid document")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalDoc), 0o644))

	root, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, root.Children, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"TodoCategory"}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestSchema_IsJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(Schema()), &v))
	assert.Equal(t, "tododoc document", v["title"])
}
