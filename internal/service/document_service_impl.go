package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/tododoc/internal/action"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/importer"
	"github.com/alexanderramin/tododoc/internal/render"
	"github.com/alexanderramin/tododoc/internal/repository"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// maxApplyAttempts bounds retries when another writer bumps the revision
// between load and save.
const maxApplyAttempts = 3

// Options tune how documents are edited.
type Options struct {
	Policy   action.Policy
	Defaults editor.Defaults
	// Now replaces time.Now; used by tests.
	Now func() time.Time
	// NewID replaces uuid generation for node ids; used by tests.
	NewID func() string
}

type documentService struct {
	store    repository.Store
	opts     Options
	md       goldmark.Markdown
	observer UseCaseObserver
}

func NewDocumentService(store repository.Store, opts Options, observers ...UseCaseObserver) DocumentService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &documentService{
		store:    store,
		opts:     opts,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *documentService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *documentService) newDocument(name, title string, root *domain.Root) (*domain.Document, error) {
	if root == nil {
		root = domain.NewRoot()
	}
	now := s.opts.Now().UTC()
	d := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Title:     title,
		Root:      root,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.ValidateName(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *documentService) Create(ctx context.Context, name, title string, root *domain.Root) (doc *domain.Document, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "create-document", startedAt, map[string]any{"document": name}, err)
	}()

	doc, err = s.newDocument(name, title, root)
	if err != nil {
		return nil, err
	}
	err = s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, _ repository.EventRepo) error {
		return docs.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, name string) (*domain.Document, error) {
	var doc *domain.Document
	err := s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, _ repository.EventRepo) error {
		var err error
		doc, err = docs.GetByName(ctx, name)
		return err
	})
	return doc, err
}

func (s *documentService) List(ctx context.Context) ([]*domain.Document, error) {
	var list []*domain.Document
	err := s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, _ repository.EventRepo) error {
		var err error
		list, err = docs.List(ctx)
		return err
	})
	return list, err
}

func (s *documentService) Delete(ctx context.Context, name string) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "delete-document", startedAt, map[string]any{"document": name}, err)
	}()

	return s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, _ repository.EventRepo) error {
		return docs.Delete(ctx, name)
	})
}

func (s *documentService) Apply(ctx context.Context, name string, fn func(h editor.Session)) (result *ApplyResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"document": name}
	defer func() {
		if result != nil {
			fields["actions"] = len(result.Actions)
			fields["revision"] = result.Document.Revision
		}
		s.observe(ctx, "apply", startedAt, fields, err)
	}()

	for attempt := 1; ; attempt++ {
		result, err = s.applyOnce(ctx, name, fn)
		retry := errors.Is(err, repository.ErrRevisionConflict) || errors.Is(err, repository.ErrDuplicateName)
		if !retry || attempt == maxApplyAttempts {
			return result, err
		}
		fields["retries"] = attempt
	}
}

func (s *documentService) applyOnce(ctx context.Context, name string, fn func(h editor.Session)) (*ApplyResult, error) {
	var result *ApplyResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, events repository.EventRepo) error {
		doc, err := docs.GetByName(ctx, name)
		created := false
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if doc, err = s.newDocument(name, "", nil); err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		}

		var applied []action.Action
		ed := editor.New(doc.Root, s.editorOptions(func(a action.Action) {
			applied = append(applied, a)
		})...)
		fn(ed)

		before := doc.Root
		doc.Root = ed.Root()
		result = &ApplyResult{
			Document:  doc,
			CreatedID: ed.LastCreatedID(),
			Actions:   actionNames(applied),
			Changed:   !tree.Equal(before, doc.Root),
		}
		if !result.Changed && !created {
			return nil
		}

		doc.UpdatedAt = s.opts.Now().UTC()
		if created {
			err = docs.Create(ctx, doc)
		} else {
			err = docs.Save(ctx, doc, doc.Revision)
		}
		if err != nil {
			return err
		}
		return events.Append(ctx, s.eventsFor(doc, applied))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *documentService) editorOptions(observe func(action.Action)) []editor.Option {
	opts := []editor.Option{
		editor.WithPolicy(s.opts.Policy),
		editor.WithDefaults(s.opts.Defaults),
		editor.WithClock(s.opts.Now),
		editor.WithObserver(observe),
	}
	if s.opts.NewID != nil {
		opts = append(opts, editor.WithIDGenerator(s.opts.NewID))
	}
	return opts
}

func (s *documentService) eventsFor(doc *domain.Document, applied []action.Action) []domain.Event {
	out := make([]domain.Event, 0, len(applied))
	for _, a := range applied {
		out = append(out, domain.Event{
			DocumentID: doc.ID,
			Revision:   doc.Revision,
			Action:     a.Name(),
			TargetID:   action.TargetID(a),
			CreatedAt:  doc.UpdatedAt,
		})
	}
	return out
}

func actionNames(applied []action.Action) []string {
	names := make([]string, len(applied))
	for i, a := range applied {
		names[i] = a.Name()
	}
	return names
}

func (s *documentService) Import(ctx context.Context, name, path string) (doc *domain.Document, err error) {
	startedAt := time.Now()
	fields := map[string]any{"document": name, "path": path}
	defer func() {
		s.observe(ctx, "import", startedAt, fields, err)
	}()

	root, err := importer.Load(path)
	if err != nil {
		return nil, err
	}
	st := render.Count(root)
	fields["items"] = st.Items
	fields["categories"] = st.Categories

	err = s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, events repository.EventRepo) error {
		existing, err := docs.GetByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			doc, err = s.newDocument(name, "", root)
			if err != nil {
				return err
			}
			return docs.Create(ctx, doc)
		}
		if err != nil {
			return err
		}
		existing.Root = root
		existing.UpdatedAt = s.opts.Now().UTC()
		if err := docs.Save(ctx, existing, existing.Revision); err != nil {
			return err
		}
		doc = existing
		return events.Append(ctx, []domain.Event{{
			DocumentID: doc.ID,
			Revision:   doc.Revision,
			Action:     "import",
			CreatedAt:  doc.UpdatedAt,
		}})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Export(ctx context.Context, name string, format ExportFormat, w io.Writer) error {
	doc, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc.Root); err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, markdownDocument(doc))
		return err
	case FormatHTML:
		var buf bytes.Buffer
		if err := s.md.Convert([]byte(markdownDocument(doc)), &buf); err != nil {
			return fmt.Errorf("rendering html: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

// markdownDocument prefixes the tree with the document title, falling back
// to its name.
func markdownDocument(doc *domain.Document) string {
	title := doc.Title
	if title == "" {
		title = doc.Name
	}
	body := render.ToMarkdown(doc.Root)
	if body == "" {
		return "# " + title + "\n"
	}
	return "# " + title + "\n\n" + body
}

func (s *documentService) History(ctx context.Context, name string, limit int) ([]domain.Event, error) {
	var out []domain.Event
	err := s.store.WithinTx(ctx, func(ctx context.Context, docs repository.DocumentRepo, events repository.EventRepo) error {
		doc, err := docs.GetByName(ctx, name)
		if err != nil {
			return err
		}
		out, err = events.ListByDocument(ctx, doc.ID, limit)
		return err
	})
	return out, err
}
