package cli

import (
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Manage collapsible sections inside categories",
	}

	cmd.AddCommand(
		newSectionAddCmd(app),
		newSectionEditCmd(app),
		newToggleCmd(app, domain.KindSection, func(s editor.Session, id string) { s.ToggleSection(id) }),
		newRemoveCmd(app, domain.KindSection, func(s editor.Session, id string) { s.DeleteSection(id) }),
	)

	return cmd
}

func newSectionAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add CATEGORY_ID",
		Short: "Append a section to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				catID, err := resolveIn(s, args[0], domain.KindCategory)
				if err != nil {
					return err
				}
				editor.AddSectionWith(s, catID, title)
				return nil
			})
			if err != nil {
				return err
			}
			return reportAdded(cmd, res, domain.KindSection)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Section title")

	return cmd
}

func newSectionEditCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateNonBlank(title); err != nil {
				return errTitle(err)
			}
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], domain.KindSection); err != nil {
					return err
				}
				s.EditSection(id, title)
				return nil
			})
			if err != nil {
				return err
			}
			reportUpdated(cmd, res, domain.KindSection, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
