package cli

import (
	"fmt"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/spf13/cobra"
)

func errTitle(err error) error {
	return fmt.Errorf("--title %w", err)
}

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"sub"},
		Short:   "Manage subtasks under items and sections",
	}

	cmd.AddCommand(
		newSubtaskAddCmd(app),
		newSubtaskEditCmd(app),
		newToggleCmd(app, domain.KindSubtask, func(s editor.Session, id string) { s.ToggleSubtask(id) }),
		newRemoveCmd(app, domain.KindSubtask, func(s editor.Session, id string) { s.DeleteSubtask(id) }),
	)

	return cmd
}

func newSubtaskAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add PARENT_ID",
		Short: "Add a subtask to an item or a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				parentID, err := resolveIn(s, args[0], domain.KindItem, domain.KindSection)
				if err != nil {
					return err
				}
				editor.AddSubtaskWith(s, parentID, title)
				return nil
			})
			if err != nil {
				return err
			}
			return reportAdded(cmd, res, domain.KindSubtask)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Subtask title")

	return cmd
}

func newSubtaskEditCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateNonBlank(title); err != nil {
				return errTitle(err)
			}
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], domain.KindSubtask); err != nil {
					return err
				}
				s.EditSubtask(id, title)
				return nil
			})
			if err != nil {
				return err
			}
			reportUpdated(cmd, res, domain.KindSubtask, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage free-text notes under items and sections",
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteEditCmd(app),
		newRemoveCmd(app, domain.KindNote, func(s editor.Session, id string) { s.DeleteNote(id) }),
	)

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add PARENT_ID",
		Short: "Add a note to an item or a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				parentID, err := resolveIn(s, args[0], domain.KindItem, domain.KindSection)
				if err != nil {
					return err
				}
				editor.AddNoteWith(s, parentID, content)
				return nil
			})
			if err != nil {
				return err
			}
			return reportAdded(cmd, res, domain.KindNote)
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Note text")

	return cmd
}

func newNoteEditCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace a note's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], domain.KindNote); err != nil {
					return err
				}
				s.EditNote(id, content)
				return nil
			})
			if err != nil {
				return err
			}
			reportUpdated(cmd, res, domain.KindNote, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "New text")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
