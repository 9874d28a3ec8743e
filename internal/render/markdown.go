package render

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
)

// Markdown renders a document as a Markdown checklist. Categories and
// sections become headings; items and subtasks become task list entries
// nested under their parent; notes become indented quotes.
//
// A Markdown value tracks list depth while rendering and must not be
// shared between goroutines.
type Markdown struct {
	depth int
}

// ToMarkdown renders root with a fresh Markdown renderer.
func ToMarkdown(root *domain.Root) string {
	return Render[string](&Markdown{}, root)
}

func (m *Markdown) RenderRoot(r *domain.Root) string {
	return strings.Join(RenderChildren[string](m, r.Children), "\n")
}

func (m *Markdown) RenderCategory(c *domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", c.Title)
	b.WriteString(m.blocks(c.Children))
	return b.String()
}

func (m *Markdown) RenderSection(s *domain.Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", s.Title)
	b.WriteString(m.blocks(s.Children))
	return b.String()
}

func (m *Markdown) RenderItem(it *domain.Item) string {
	var b strings.Builder
	b.WriteString(m.indent())
	b.WriteString(checkbox(it.Completed))
	b.WriteString(it.Title)
	meta := []string{string(it.Priority)}
	if it.DueDate != nil && *it.DueDate != "" {
		meta = append(meta, "due "+dateOnly(*it.DueDate))
	}
	fmt.Fprintf(&b, " _(%s)_\n", strings.Join(meta, ", "))
	b.WriteString(m.nested(it.Children))
	return b.String()
}

func (m *Markdown) RenderSubtask(s *domain.Subtask) string {
	return m.indent() + checkbox(s.Completed) + s.Title + "\n"
}

func (m *Markdown) RenderNote(n *domain.Note) string {
	var b strings.Builder
	for _, line := range strings.Split(n.Content, "\n") {
		b.WriteString(m.indent())
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// blocks renders the children of a heading: list entries first-level,
// with a blank line before any nested heading.
func (m *Markdown) blocks(children []domain.Node) string {
	var b strings.Builder
	prevList := false
	for _, child := range children {
		if child.Kind() == domain.KindSection && prevList {
			b.WriteString("\n")
		}
		b.WriteString(Render[string](m, child))
		prevList = child.Kind() != domain.KindSection
	}
	if prevList {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Markdown) nested(children []domain.Node) string {
	m.depth++
	defer func() { m.depth-- }()
	return strings.Join(RenderChildren[string](m, children), "")
}

func (m *Markdown) indent() string {
	return strings.Repeat("  ", m.depth)
}

func checkbox(done bool) string {
	if done {
		return "- [x] "
	}
	return "- [ ] "
}

// dateOnly trims an RFC 3339 timestamp to its date part.
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}
