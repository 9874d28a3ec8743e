package render

import "github.com/alexanderramin/tododoc/internal/domain"

// Stats aggregates node counts over a subtree.
type Stats struct {
	Categories        int
	Sections          int
	Items             int
	CompletedItems    int
	Subtasks          int
	CompletedSubtasks int
	Notes             int
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Categories:        s.Categories + o.Categories,
		Sections:          s.Sections + o.Sections,
		Items:             s.Items + o.Items,
		CompletedItems:    s.CompletedItems + o.CompletedItems,
		Subtasks:          s.Subtasks + o.Subtasks,
		CompletedSubtasks: s.CompletedSubtasks + o.CompletedSubtasks,
		Notes:             s.Notes + o.Notes,
	}
}

// Done is the number of completed items and subtasks.
func (s Stats) Done() int { return s.CompletedItems + s.CompletedSubtasks }

// Total is the number of items and subtasks.
func (s Stats) Total() int { return s.Items + s.Subtasks }

// Percent is Done over Total, 0 for an empty document.
func (s Stats) Percent() int {
	if s.Total() == 0 {
		return 0
	}
	return s.Done() * 100 / s.Total()
}

// StatsRenderer counts nodes. It is stateless.
type StatsRenderer struct{}

// Count returns the statistics of n and its subtree.
func Count(n domain.Node) Stats {
	return Render[Stats](StatsRenderer{}, n)
}

func (r StatsRenderer) sum(children []domain.Node) Stats {
	var total Stats
	for s := range Each[Stats](r, children) {
		total = total.Add(s)
	}
	return total
}

func (r StatsRenderer) RenderRoot(n *domain.Root) Stats {
	return r.sum(n.Children)
}

func (r StatsRenderer) RenderCategory(n *domain.Category) Stats {
	return Stats{Categories: 1}.Add(r.sum(n.Children))
}

func (r StatsRenderer) RenderSection(n *domain.Section) Stats {
	return Stats{Sections: 1}.Add(r.sum(n.Children))
}

func (r StatsRenderer) RenderItem(n *domain.Item) Stats {
	s := Stats{Items: 1}
	if n.Completed {
		s.CompletedItems = 1
	}
	return s.Add(r.sum(n.Children))
}

func (StatsRenderer) RenderSubtask(n *domain.Subtask) Stats {
	s := Stats{Subtasks: 1}
	if n.Completed {
		s.CompletedSubtasks = 1
	}
	return s
}

func (StatsRenderer) RenderNote(*domain.Note) Stats {
	return Stats{Notes: 1}
}
