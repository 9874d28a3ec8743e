package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/render"
	"github.com/alexanderramin/tododoc/internal/tree"
)

// Outline flattens a document into TreeItems for RenderTree. It is a
// render.Renderer and tracks depth while walking, so a value must not be
// shared between goroutines.
type Outline struct {
	// Now anchors relative due dates. Zero means time.Now.
	Now   time.Time
	depth int
}

var _ render.Renderer[[]TreeItem] = (*Outline)(nil)

// ToOutline renders root with a fresh Outline.
func ToOutline(root *domain.Root, now time.Time) []TreeItem {
	return render.Render[[]TreeItem](&Outline{Now: now}, root)
}

func (o *Outline) RenderRoot(r *domain.Root) []TreeItem {
	return o.children(r.Children)
}

func (o *Outline) RenderCategory(c *domain.Category) []TreeItem {
	line := TreeItem{
		ID:     c.ID,
		Kind:   domain.KindCategory,
		Title:  c.Title,
		Level:  o.depth,
		Color:  c.Color,
		Detail: progressDetail(render.Count(c)),
	}
	return append([]TreeItem{line}, o.nested(c.Children)...)
}

func (o *Outline) RenderSection(s *domain.Section) []TreeItem {
	line := TreeItem{
		ID:     s.ID,
		Kind:   domain.KindSection,
		Title:  s.Title,
		Level:  o.depth,
		Status: StatusOpen,
	}
	done, total := tree.Progress(s)
	if total > 0 {
		line.Detail = fmt.Sprintf("%d/%d", done, total)
	}
	if s.Collapsed {
		line.Status = StatusCollapsed
		return []TreeItem{line}
	}
	return append([]TreeItem{line}, o.nested(s.Children)...)
}

func (o *Outline) RenderItem(it *domain.Item) []TreeItem {
	line := TreeItem{
		ID:     it.ID,
		Kind:     domain.KindItem,
		Title:    it.Title,
		Level:    o.depth,
		Status:   completion(it.Completed),
		Priority: it.Priority,
	}
	parts := []string{string(it.Priority)}
	if it.DueDate != nil {
		parts = append(parts, DueLabel(*it.DueDate, o.now()))
	}
	if done, total := tree.Progress(it); total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", done, total))
	}
	line.Detail = strings.Join(parts, " · ")
	return append([]TreeItem{line}, o.nested(it.Children)...)
}

func (o *Outline) RenderSubtask(s *domain.Subtask) []TreeItem {
	return []TreeItem{{
		ID:     s.ID,
		Kind:   domain.KindSubtask,
		Title:  s.Title,
		Level:  o.depth,
		Status: completion(s.Completed),
	}}
}

func (o *Outline) RenderNote(n *domain.Note) []TreeItem {
	text, _, _ := strings.Cut(n.Content, "\n")
	return []TreeItem{{
		ID:    n.ID,
		Kind:  domain.KindNote,
		Title: text,
		Level: o.depth,
	}}
}

func (o *Outline) nested(children []domain.Node) []TreeItem {
	o.depth++
	defer func() { o.depth-- }()
	return o.children(children)
}

// children renders each child and marks the head line of the final one.
func (o *Outline) children(children []domain.Node) []TreeItem {
	var out []TreeItem
	for i, lines := range render.RenderChildren[[]TreeItem](o, children) {
		if len(lines) == 0 {
			continue
		}
		lines[0].IsLast = i == len(children)-1
		out = append(out, lines...)
	}
	return out
}

func (o *Outline) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func completion(done bool) string {
	if done {
		return StatusDone
	}
	return StatusTodo
}

func progressDetail(s render.Stats) string {
	if s.Total() == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.Done(), s.Total())
}
