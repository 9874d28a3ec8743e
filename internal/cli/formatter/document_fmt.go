package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/render"
)

// FormatDocumentList renders one row per stored document.
func FormatDocumentList(docs []*domain.Document, current string, now time.Time) string {
	if len(docs) == 0 {
		return Dim("No documents yet. Run `tododoc init` to create one.") + "\n"
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		name := d.Name
		if d.Name == current {
			name = StyleGreen.Render("* " + d.Name)
		} else {
			name = "  " + name
		}
		s := render.Count(d.Root)
		rows = append(rows, []string{
			name,
			d.Title,
			fmt.Sprintf("%d/%d", s.Done(), s.Total()),
			strconv.Itoa(d.Revision),
			HumanTimestamp(d.UpdatedAt, now),
		})
	}
	return RenderTable([]string{"NAME", "TITLE", "DONE", "REV", "UPDATED"}, rows)
}

// FormatHistory renders document events, newest first.
func FormatHistory(events []domain.Event, now time.Time) string {
	if len(events) == 0 {
		return Dim("No changes recorded.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		target := e.TargetID
		if target == "" {
			target = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Revision),
			e.Action,
			target,
			HumanTimestamp(e.CreatedAt, now),
		})
	}
	return RenderTable([]string{"REV", "ACTION", "TARGET", "WHEN"}, rows)
}

// FormatStats renders completion counts and a progress bar in a box.
func FormatStats(title string, s render.Stats) string {
	var b strings.Builder
	b.WriteString(RenderProgress(s.Done(), s.Total(), 24))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(
		[]string{"KIND", "DONE", "TOTAL"},
		[][]string{
			{"Items", strconv.Itoa(s.CompletedItems), strconv.Itoa(s.Items)},
			{"Subtasks", strconv.Itoa(s.CompletedSubtasks), strconv.Itoa(s.Subtasks)},
		},
	))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d",
		Dim("categories"), s.Categories,
		Dim("sections"), s.Sections,
		Dim("notes"), s.Notes,
	)
	return RenderBox(title, b.String())
}
