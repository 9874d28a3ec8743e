package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tododoc/internal/cli/formatter"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/render"
	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the document interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	p := tea.NewProgram(newTUIModel(cmd.Context(), app),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}

type tuiMode int

const (
	modeBrowse tuiMode = iota
	modeForm
	modeConfirm
)

// chromeLines is the number of view lines outside the tree: header,
// summary, blank, status and help.
const chromeLines = 6

type docLoadedMsg struct {
	doc *domain.Document
	err error
}

type appliedMsg struct {
	res    *service.ApplyResult
	status string
	err    error
}

type tuiModel struct {
	ctx  context.Context
	app  *App
	keys tuiKeyMap
	help help.Model

	doc    *domain.Document
	items  []formatter.TreeItem
	cursor int
	offset int
	filter domain.FilterMode

	mode     tuiMode
	form     *huh.Form
	values   *formValues
	editID   string
	editKind domain.Kind

	status string
	err    error
	width  int
	height int
}

func newTUIModel(ctx context.Context, app *App) *tuiModel {
	return &tuiModel{
		ctx:    ctx,
		app:    app,
		keys:   defaultTUIKeys(),
		help:   help.New(),
		filter: domain.FilterAll,
		doc:    &domain.Document{Name: app.Document, Root: domain.NewRoot()},
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return m.load()
}

func (m *tuiModel) load() tea.Cmd {
	ctx, app := m.ctx, m.app
	return func() tea.Msg {
		doc, err := loadDocument(ctx, app)
		return docLoadedMsg{doc: doc, err: err}
	}
}

// apply runs mut against the stored document off the update loop.
func (m *tuiModel) apply(status string, mut mutation) tea.Cmd {
	ctx, docs, name := m.ctx, m.app.Docs, m.app.Document
	return func() tea.Msg {
		var mErr error
		res, err := docs.Apply(ctx, name, func(s editor.Session) {
			mErr = mut(s)
		})
		if err == nil {
			err = mErr
		}
		return appliedMsg{res: res, status: status, err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
	case docLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.refresh()
		return m, nil
	case appliedMsg:
		return m, m.applied(msg)
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirm:
		if k, ok := msg.(tea.KeyMsg); ok {
			return m, m.confirmDelete(k)
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return m, m.updateBrowse(k)
	}
	return m, nil
}

func (m *tuiModel) applied(msg appliedMsg) tea.Cmd {
	if msg.err != nil {
		m.err = msg.err
		return nil
	}
	m.err = nil
	m.doc = msg.res.Document
	m.refresh()
	if msg.res.CreatedID != "" {
		m.focus(msg.res.CreatedID)
	}
	m.status = msg.status
	if !msg.res.Changed {
		m.status = "No changes."
	}
	return nil
}

func (m *tuiModel) updateBrowse(k tea.KeyMsg) tea.Cmd {
	m.status = ""
	sel, hasSel := m.selected()

	switch {
	case key.Matches(k, m.keys.Quit):
		return tea.Quit
	case key.Matches(k, m.keys.Up):
		m.move(-1)
	case key.Matches(k, m.keys.Down):
		m.move(1)
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(k, m.keys.Reload):
		return m.load()
	case key.Matches(k, m.keys.Filter):
		m.filter = nextFilter(m.filter)
		m.refresh()
	case key.Matches(k, m.keys.AddCategory):
		return m.apply("Added category.", func(s editor.Session) error {
			editor.AddCategoryWith(s, "", "")
			return nil
		})
	case key.Matches(k, m.keys.AddSection):
		return m.addUnder(sel, hasSel, domain.KindSection, func(s editor.Session, parentID string) {
			editor.AddSectionWith(s, parentID, "")
		}, domain.KindCategory)
	case key.Matches(k, m.keys.AddItem):
		return m.addUnder(sel, hasSel, domain.KindItem, func(s editor.Session, parentID string) {
			editor.AddItemWith(s, parentID, "", "")
		}, domain.KindSection, domain.KindCategory)
	case key.Matches(k, m.keys.AddSubtask):
		return m.addUnder(sel, hasSel, domain.KindSubtask, func(s editor.Session, parentID string) {
			editor.AddSubtaskWith(s, parentID, "")
		}, domain.KindItem, domain.KindSection)
	case key.Matches(k, m.keys.AddNote):
		return m.addUnder(sel, hasSel, domain.KindNote, func(s editor.Session, parentID string) {
			editor.AddNoteWith(s, parentID, "")
		}, domain.KindItem, domain.KindSection)
	case !hasSel:
		return nil
	case key.Matches(k, m.keys.Toggle):
		return m.toggle(sel)
	case key.Matches(k, m.keys.Edit):
		return m.openForm(sel)
	case key.Matches(k, m.keys.Delete):
		m.mode = modeConfirm
	}
	return nil
}

// addUnder adds a node of kind under the nearest ancestor of the selection,
// itself included, whose kind is one of parents.
func (m *tuiModel) addUnder(sel formatter.TreeItem, hasSel bool, kind domain.Kind, add func(editor.Session, string), parents ...domain.Kind) tea.Cmd {
	parentID := ""
	if hasSel {
		parentID = enclosing(m.doc.Root, sel.ID, parents...)
	}
	if parentID == "" {
		m.status = fmt.Sprintf("Select a %s to add a %s to.", kindList(parents), kind.Label())
		return nil
	}
	return m.apply("Added "+kind.Label()+".", func(s editor.Session) error {
		add(s, parentID)
		return nil
	})
}

func (m *tuiModel) toggle(sel formatter.TreeItem) tea.Cmd {
	var fn func(editor.Session)
	switch sel.Kind {
	case domain.KindItem:
		fn = func(s editor.Session) { s.ToggleItem(sel.ID) }
	case domain.KindSubtask:
		fn = func(s editor.Session) { s.ToggleSubtask(sel.ID) }
	case domain.KindSection:
		fn = func(s editor.Session) { s.ToggleSection(sel.ID) }
	default:
		m.status = "Only items, subtasks and sections toggle."
		return nil
	}
	return m.apply("", func(s editor.Session) error {
		fn(s)
		return nil
	})
}

func (m *tuiModel) openForm(sel formatter.TreeItem) tea.Cmd {
	n, ok := tree.Find(m.doc.Root, sel.ID)
	if !ok {
		return nil
	}
	m.values = &formValues{}
	m.form = newEditForm(n, m.app.Defaults, m.values)
	if m.form == nil {
		return nil
	}
	m.mode = modeForm
	m.editID, m.editKind = sel.ID, sel.Kind
	return m.form.Init()
}

func (m *tuiModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		m.status = "Cancelled."
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		mut := editMutation(m.editKind, m.editID, m.values)
		status := "Updated " + m.editKind.Label() + "."
		m.closeForm()
		return m, m.apply(status, mut)
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled."
		return m, nil
	}
	return m, cmd
}

func (m *tuiModel) closeForm() {
	m.mode = modeBrowse
	m.form = nil
	m.values = nil
}

func (m *tuiModel) confirmDelete(k tea.KeyMsg) tea.Cmd {
	m.mode = modeBrowse
	sel, ok := m.selected()
	if !ok || (k.String() != "y" && k.String() != "Y") {
		m.status = "Cancelled."
		return nil
	}
	id := sel.ID
	var del func(editor.Session)
	switch sel.Kind {
	case domain.KindCategory:
		del = func(s editor.Session) { s.DeleteCategory(id) }
	case domain.KindSection:
		del = func(s editor.Session) { s.DeleteSection(id) }
	case domain.KindItem:
		del = func(s editor.Session) { s.DeleteItem(id) }
	case domain.KindSubtask:
		del = func(s editor.Session) { s.DeleteSubtask(id) }
	case domain.KindNote:
		del = func(s editor.Session) { s.DeleteNote(id) }
	default:
		return nil
	}
	return m.apply("Deleted "+sel.Kind.Label()+".", func(s editor.Session) error {
		del(s)
		return nil
	})
}

// refresh rebuilds the visible outline from the document and filter.
func (m *tuiModel) refresh() {
	root := m.doc.Root
	if m.filter != domain.FilterAll {
		root = tree.Filter(root, m.filter)
	}
	m.items = formatter.ToOutline(root, m.app.now())
	m.move(0)
}

func (m *tuiModel) move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.items)-1, 0))
	m.scroll()
}

func (m *tuiModel) focus(id string) {
	for i, it := range m.items {
		if it.ID == id {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

// scroll keeps the cursor inside the visible window.
func (m *tuiModel) scroll() {
	rows := m.treeRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// treeRows is how many outline lines fit, or 0 when the height is unknown.
func (m *tuiModel) treeRows() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-chromeLines, 1)
}

func (m *tuiModel) selected() (formatter.TreeItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return formatter.TreeItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(documentHeading(m.doc)))
	b.WriteString("\n")

	if m.mode == modeForm && m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}

	st := render.Count(m.doc.Root)
	b.WriteString(formatter.Dim(fmt.Sprintf("%s · %d/%d done · filter %s", m.doc.Name, st.Done(), st.Total(), m.filter)))
	b.WriteString("\n")

	if len(m.items) == 0 {
		if len(m.doc.Root.Children) == 0 {
			b.WriteString(formatter.Dim("Empty document. Press c to add a category."))
		} else {
			b.WriteString(formatter.Dim("Nothing matches the filter."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.treeView())
	}

	b.WriteString("\n")
	switch {
	case m.mode == modeConfirm:
		if sel, ok := m.selected(); ok {
			b.WriteString(formatter.StyleYellowBold.Render(fmt.Sprintf("Delete %s %q? (y/N)", sel.Kind.Label(), sel.Title)))
		}
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *tuiModel) treeView() string {
	lines := strings.Split(strings.TrimRight(formatter.RenderTree(m.items, formatter.TreeOptions{}), "\n"), "\n")
	end := len(lines)
	if rows := m.treeRows(); rows > 0 {
		end = min(m.offset+rows, len(lines))
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(formatter.StyleYellowBold.Render("› "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	return b.String()
}

func nextFilter(f domain.FilterMode) domain.FilterMode {
	switch f {
	case domain.FilterAll:
		return domain.FilterActive
	case domain.FilterActive:
		return domain.FilterCompleted
	}
	return domain.FilterAll
}

// enclosing returns id itself or its nearest ancestor whose kind is one of
// kinds, or "" when there is none.
func enclosing(root *domain.Root, id string, kinds ...domain.Kind) string {
	for id != "" {
		n, ok := tree.Find(root, id)
		if !ok {
			return ""
		}
		if kindAllowed(n.Kind(), kinds) {
			return id
		}
		p, ok := tree.Parent(root, id)
		if !ok {
			return ""
		}
		id = p.NodeID()
	}
	return ""
}
