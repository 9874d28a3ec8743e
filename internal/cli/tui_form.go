package cli

import (
	"github.com/alexanderramin/tododoc/internal/cli/formatter"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tododocHuhTheme styles huh forms with the formatter palette.
func tododocHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formValues receives whatever the edit form collects.
type formValues struct {
	Title    string
	Color    string
	Content  string
	Priority domain.Priority
}

// newEditForm builds the form for node n, prefilled with its fields.
// The placeholders show the configured defaults.
func newEditForm(n domain.Node, d editor.Defaults, v *formValues) *huh.Form {
	var fields []huh.Field
	titleInput := func(placeholder string) *huh.Input {
		return huh.NewInput().Title("Title").Placeholder(placeholder).Value(&v.Title).Validate(validateNonBlank)
	}

	switch node := n.(type) {
	case *domain.Category:
		v.Title, v.Color = node.Title, node.Color
		fields = append(fields,
			titleInput(d.CategoryTitle),
			huh.NewInput().Title("Color").Placeholder(d.CategoryColor).Value(&v.Color).Validate(validateColor),
		)
	case *domain.Section:
		v.Title = node.Title
		fields = append(fields, titleInput(d.SectionTitle))
	case *domain.Item:
		v.Title, v.Priority = node.Title, node.Priority
		fields = append(fields,
			titleInput(d.ItemTitle),
			huh.NewSelect[domain.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("high", domain.PriorityHigh),
					huh.NewOption("medium", domain.PriorityMedium),
					huh.NewOption("low", domain.PriorityLow),
				).
				Value(&v.Priority),
		)
	case *domain.Subtask:
		v.Title = node.Title
		fields = append(fields, titleInput(d.SubtaskTitle))
	case *domain.Note:
		v.Content = node.Content
		fields = append(fields, huh.NewText().Title("Note").Placeholder(d.NoteContent).Value(&v.Content))
	default:
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(tododocHuhTheme()).WithShowHelp(true)
}

// editMutation applies v to the node with id.
func editMutation(kind domain.Kind, id string, v *formValues) mutation {
	return func(s editor.Session) error {
		switch kind {
		case domain.KindCategory:
			editor.EditCategory(s, id, v.Title, v.Color)
		case domain.KindSection:
			s.EditSection(id, v.Title)
		case domain.KindItem:
			editor.EditItemFields(s, id, v.Title, v.Priority)
		case domain.KindSubtask:
			s.EditSubtask(id, v.Title)
		case domain.KindNote:
			s.EditNote(id, v.Content)
		}
		return nil
	}
}
