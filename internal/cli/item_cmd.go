package cli

import (
	"errors"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage to-do items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemEditCmd(app),
		newToggleCmd(app, domain.KindItem, func(s editor.Session, id string) { s.ToggleItem(id) }),
		newRemoveCmd(app, domain.KindItem, func(s editor.Session, id string) { s.DeleteItem(id) }),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var title string
	var priority priorityValue

	cmd := &cobra.Command{
		Use:   "add PARENT_ID",
		Short: "Add an item to a category or a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				parentID, err := resolveIn(s, args[0], domain.KindCategory, domain.KindSection)
				if err != nil {
					return err
				}
				editor.AddItemWith(s, parentID, title, priority.p)
				return nil
			})
			if err != nil {
				return err
			}
			return reportAdded(cmd, res, domain.KindItem)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Item title")
	cmd.Flags().VarP(&priority, "priority", "p", "Priority (high|medium|low)")

	return cmd
}

func newItemEditCmd(app *App) *cobra.Command {
	var title string
	var priority priorityValue

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's title or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && priority.p == "" {
				return errors.New("nothing to change: pass --title or --priority")
			}
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], domain.KindItem); err != nil {
					return err
				}
				editor.EditItemFields(s, id, title, priority.p)
				return nil
			})
			if err != nil {
				return err
			}
			reportUpdated(cmd, res, domain.KindItem, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().VarP(&priority, "priority", "p", "New priority (high|medium|low)")

	return cmd
}
