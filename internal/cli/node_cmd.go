package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tododoc/internal/cli/formatter"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/spf13/cobra"
)

// mutation resolves ids against the session's tree, then calls handlers.
// Returning an error aborts before anything is dispatched.
type mutation func(s editor.Session) error

// applyMutation runs m inside one DocumentService.Apply on the current
// document.
func applyMutation(cmd *cobra.Command, app *App, m mutation) (*service.ApplyResult, error) {
	var mErr error
	res, err := app.Docs.Apply(cmd.Context(), app.Document, func(s editor.Session) {
		mErr = m(s)
	})
	if err != nil {
		return nil, err
	}
	if mErr != nil {
		return nil, mErr
	}
	return res, nil
}

// resolveIn resolves input inside a mutation.
func resolveIn(s editor.Session, input string, kinds ...domain.Kind) (string, error) {
	return resolveID(s.Root(), input, kinds...)
}

func reportAdded(cmd *cobra.Command, res *service.ApplyResult, kind domain.Kind) error {
	if res.CreatedID == "" {
		return fmt.Errorf("%s was not added", kind.Label())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s\n",
		kind.Label(),
		formatter.Bold(nodeTitle(res.Document.Root, res.CreatedID)),
		formatter.Dim(res.CreatedID))
	return nil
}

func reportUpdated(cmd *cobra.Command, res *service.ApplyResult, kind domain.Kind, id string) {
	out := cmd.OutOrStdout()
	if !res.Changed {
		fmt.Fprintln(out, formatter.Dim("No changes."))
		return
	}
	fmt.Fprintf(out, "Updated %s %s\n", kind.Label(), formatter.Bold(nodeTitle(res.Document.Root, id)))
}

// nodeTitle returns a one-line label for the node with id: its title, or
// the first line of a note.
func nodeTitle(root *domain.Root, id string) string {
	n, ok := tree.Find(root, id)
	if !ok {
		return id
	}
	switch v := n.(type) {
	case *domain.Category:
		return v.Title
	case *domain.Section:
		return v.Title
	case *domain.Item:
		return v.Title
	case *domain.Subtask:
		return v.Title
	case *domain.Note:
		first, _, _ := strings.Cut(v.Content, "\n")
		return first
	}
	return id
}

func newRemoveCmd(app *App, kind domain.Kind, remove func(s editor.Session, id string)) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   fmt.Sprintf("Delete a %s and everything under it", kind.Label()),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id, title string
			_, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], kind); err != nil {
					return err
				}
				title = nodeTitle(s.Root(), id)
				remove(s, id)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s %s\n", kind.Label(), formatter.Bold(title), formatter.Dim(id))
			return nil
		},
	}
}

func newToggleCmd(app *App, kind domain.Kind, toggle func(s editor.Session, id string)) *cobra.Command {
	short := fmt.Sprintf("Toggle a %s between done and open", kind.Label())
	if kind == domain.KindSection {
		short = "Collapse or expand a section"
	}
	return &cobra.Command{
		Use:   "toggle ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], kind); err != nil {
					return err
				}
				toggle(s, id)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				toggleVerb(res.Document.Root, id), kind.Label(), formatter.Bold(nodeTitle(res.Document.Root, id)))
			return nil
		},
	}
}

func toggleVerb(root *domain.Root, id string) string {
	n, _ := tree.Find(root, id)
	switch v := n.(type) {
	case *domain.Section:
		if v.Collapsed {
			return "Collapsed"
		}
		return "Expanded"
	case *domain.Item:
		if v.Completed {
			return formatter.StyleGreen.Render("Completed")
		}
		return "Reopened"
	case *domain.Subtask:
		if v.Completed {
			return formatter.StyleGreen.Render("Completed")
		}
		return "Reopened"
	}
	return "Toggled"
}
