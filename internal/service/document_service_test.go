package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tododoc/internal/action"
	"github.com/alexanderramin/tododoc/internal/db"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/importer"
	"github.com/alexanderramin/tododoc/internal/repository"
	"github.com/alexanderramin/tododoc/internal/testutil"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var fixedNow = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts Options, observers ...UseCaseObserver) (DocumentService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.NewID == nil {
		opts.NewID = seqIDs()
	}
	store := repository.NewSQLiteStore(testutil.NewTestUoW(database))
	return NewDocumentService(store, opts, observers...), database
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCreate_AndGet(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	doc, err := svc.Create(ctx, "personal", "Personal", importer.Example())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Revision)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	assert.Equal(t, "Personal", got.Title)
	assert.True(t, tree.Equal(doc.Root, got.Root))
}

func TestCreate_RejectsBadName(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	_, err := svc.Create(context.Background(), "Has Spaces", "", nil)
	assert.Error(t, err)
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "work", "", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "work", "", nil)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestList_AndDelete(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		_, err := svc.Create(ctx, name, "", nil)
		require.NoError(t, err)
	}
	docs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Name)

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.ErrorIs(t, svc.Delete(ctx, "a"), repository.ErrNotFound)

	docs, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestApply_AutoCreatesDocument(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	res, err := svc.Apply(ctx, "personal", func(h editor.Session) { h.AddCategory() })
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "id-1", res.CreatedID)
	assert.Equal(t, []string{"add-category"}, res.Actions)
	assert.Equal(t, 1, res.Document.Revision)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	n, ok := tree.Find(got.Root, "id-1")
	require.True(t, ok)
	assert.Equal(t, "새 카테고리", n.(*domain.Category).Title)
}

func TestApply_SavesAndRecordsHistory(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	res, err := svc.Apply(ctx, "personal", func(h editor.Session) {
		h.ToggleItem("todo-1")
		h.EditItem("todo-4", "리뷰 끝내기", domain.PriorityHigh)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Document.Revision)
	assert.Equal(t, "", res.CreatedID)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Revision)
	n, _ := tree.Find(got.Root, "todo-1")
	assert.True(t, n.(*domain.Item).Completed)
	n, _ = tree.Find(got.Root, "todo-4")
	assert.Equal(t, "리뷰 끝내기", n.(*domain.Item).Title)

	events, err := svc.History(ctx, "personal", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "edit-item", events[0].Action)
	assert.Equal(t, "todo-4", events[0].TargetID)
	assert.Equal(t, "toggle-item", events[1].Action)
	assert.Equal(t, 2, events[1].Revision)
}

func TestApply_MissingTargetLeavesDocumentAlone(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	res, err := svc.Apply(ctx, "personal", func(h editor.Session) { h.ToggleItem("nope") })
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"toggle-item"}, res.Actions)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Revision)

	events, err := svc.History(ctx, "personal", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestApply_RollupPolicy(t *testing.T) {
	svc, _ := newTestService(t, Options{Policy: action.PolicyRollup})
	ctx := context.Background()

	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "personal", func(h editor.Session) { h.ToggleSubtask("subtask-2") })
	require.NoError(t, err)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	n, _ := tree.Find(got.Root, "todo-1")
	assert.True(t, n.(*domain.Item).Completed)
}

func TestApply_UsesConfiguredDefaults(t *testing.T) {
	svc, _ := newTestService(t, Options{Defaults: editor.Defaults{CategoryTitle: "Inbox"}})
	res, err := svc.Apply(context.Background(), "personal", func(h editor.Session) { h.AddCategory() })
	require.NoError(t, err)

	n, ok := tree.Find(res.Document.Root, res.CreatedID)
	require.True(t, ok)
	c := n.(*domain.Category)
	assert.Equal(t, "Inbox", c.Title)
	assert.Equal(t, "#6366f1", c.Color)
}

func TestApply_RollsBackWhenHistoryWriteFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seed := NewDocumentService(repository.NewSQLiteStore(db.NewSQLiteUnitOfWork(database)), Options{})
	_, err := seed.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	injected := errors.New("disk full")
	failing := NewDocumentService(repository.NewSQLiteStore(&testutil.FailOnNthExecUoW{
		DB: database, FailOn: 2, Err: injected,
	}), Options{})

	_, err = failing.Apply(ctx, "personal", func(h editor.Session) { h.ToggleItem("todo-1") })
	require.ErrorIs(t, err, injected)

	got, err := seed.Get(ctx, "personal")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Revision)
	n, _ := tree.Find(got.Root, "todo-1")
	assert.False(t, n.(*domain.Item).Completed)
}

func TestApply_ConcurrentWritersAllLand(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	const writers = 6
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Apply(ctx, "shared", func(h editor.Session) { h.AddCategory() }); err != nil {
				t.Errorf("apply: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, got.Root.Children, writers)
	assert.Equal(t, writers, got.Revision)
}

func TestImport_CreatesThenReplaces(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	path := writeFile(t, importer.ExampleJSON())

	doc, err := svc.Import(ctx, "personal", path)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Revision)
	assert.Len(t, doc.Root.Children, 3)

	empty := writeFile(t, []byte(`{"type":"TodoRoot","children":[]}`))
	doc, err = svc.Import(ctx, "personal", empty)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Revision)
	assert.Empty(t, doc.Root.Children)

	events, err := svc.History(ctx, "personal", 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "import", events[0].Action)
}

func TestImport_InvalidFileLeavesDocument(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	bad := writeFile(t, []byte(`{"type":"TodoRoot","children":[{"type":"TodoNote","id":"n","content":"x"}]}`))
	_, err = svc.Import(ctx, "personal", bad)
	var invalid *importer.InvalidError
	require.ErrorAs(t, err, &invalid)

	got, err := svc.Get(ctx, "personal")
	require.NoError(t, err)
	assert.Len(t, got.Root.Children, 3)
}

func TestExport_JSONRoundTrips(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, "personal", FormatJSON, &buf))
	assert.Contains(t, buf.String(), `"type": "TodoRoot"`)
	assert.Contains(t, buf.String(), "개인")

	root, err := importer.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, tree.Equal(importer.Example(), root))
}

func TestExport_Markdown(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	_, err := svc.Create(ctx, "personal", "My List", importer.Example())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, "personal", FormatMarkdown, &buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# My List\n\n## 개인\n"), out)
	assert.Contains(t, out, "- [x] 우유 사기")
}

func TestExport_MarkdownEmptyUsesName(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	_, err := svc.Create(ctx, "scratch", "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, "scratch", FormatMarkdown, &buf))
	assert.Equal(t, "# scratch\n", buf.String())
}

func TestExport_HTML(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()
	_, err := svc.Create(ctx, "personal", "", importer.Example())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, "personal", FormatHTML, &buf))
	out := buf.String()
	assert.Contains(t, out, "<h1>personal</h1>")
	assert.Contains(t, out, "<h2>개인</h2>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestExport_NotFound(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	err := svc.Export(context.Background(), "ghost", FormatJSON, &bytes.Buffer{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func TestHistory_UnknownDocument(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	_, err := svc.History(context.Background(), "ghost", 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestObserver_ReceivesUseCases(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := newTestService(t, Options{}, obs)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "personal", func(h editor.Session) { h.AddCategory() })
	require.NoError(t, err)
	_, err = svc.Create(ctx, "personal", "", nil)
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "apply", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["actions"])
	assert.Equal(t, "create-document", obs.events[1].Name)
	assert.False(t, obs.events[1].Success)
}
