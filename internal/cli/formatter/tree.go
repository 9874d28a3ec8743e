package formatter

import (
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Line statuses understood by RenderTree.
const (
	StatusTodo      = "todo"
	StatusDone      = "done"
	StatusOpen      = "open"
	StatusCollapsed = "collapsed"
)

// TreeItem is one line of a rendered document tree.
type TreeItem struct {
	ID     string
	Kind   domain.Kind
	Title  string
	Level  int
	IsLast bool
	Status string
	Detail string
	Color  string
	// Priority tints the open-item marker; empty for other kinds.
	Priority domain.Priority
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// TreeOptions control RenderTree.
type TreeOptions struct {
	// ShowIDs appends the first 8 characters of each node id.
	ShowIDs bool
}

// RenderTree draws items with box-drawing connectors. Level 0 lines are
// unindented. Detail badges are right-aligned across the whole tree.
func RenderTree(items []TreeItem, opts TreeOptions) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	badges := make([]string, len(items))
	width := 0

	// open[l] is true while the ancestor at level l still has siblings below.
	var open []bool
	for i, item := range items {
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		var prefix strings.Builder
		for l := 1; l < item.Level; l++ {
			if open[l] {
				prefix.WriteString(treePipe)
			} else {
				prefix.WriteString(treeSpace)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		line := prefix.String() + marker(item) + title(item)
		if opts.ShowIDs && item.ID != "" {
			line += " " + TruncID(item.ID)
		}
		contents[i] = line
		if item.Detail != "" {
			badges[i] = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, line := range contents {
		b.WriteString(line)
		if badges[i] != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(line)+2))
			b.WriteString(badges[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func marker(item TreeItem) string {
	switch item.Kind {
	case domain.KindCategory:
		return CategoryStyle(item.Color).Render("● ")
	case domain.KindSection:
		if item.Status == StatusCollapsed {
			return StyleDim.Render("▸ ")
		}
		return StyleDim.Render("▾ ")
	case domain.KindNote:
		return StyleDim.Render("✎ ")
	}
	if item.Status == StatusDone {
		return StyleGreen.Render("✔ ")
	}
	if item.Priority != "" {
		return PriorityStyle(item.Priority).Render("○ ")
	}
	return StyleFg.Render("○ ")
}

func title(item TreeItem) string {
	switch {
	case item.Kind == domain.KindCategory:
		return CategoryStyle(item.Color).Render(item.Title)
	case item.Kind == domain.KindSection:
		return Bold(item.Title)
	case item.Kind == domain.KindNote:
		return StyleDim.Italic(true).Render(item.Title)
	case item.Status == StatusDone:
		return Dim(item.Title)
	}
	return item.Title
}
