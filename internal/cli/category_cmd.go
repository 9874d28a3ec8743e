package cli

import (
	"errors"
	"regexp"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/spf13/cobra"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateColor(s string) error {
	if s != "" && !hexColorPattern.MatchString(s) {
		return errors.New("color must look like #6366f1")
	}
	return nil
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryEditCmd(app),
		newRemoveCmd(app, domain.KindCategory, func(s editor.Session, id string) { s.DeleteCategory(id) }),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var title, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColor(color); err != nil {
				return err
			}
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				editor.AddCategoryWith(s, title, color)
				return nil
			})
			if err != nil {
				return err
			}
			return reportAdded(cmd, res, domain.KindCategory)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Category title")
	cmd.Flags().StringVar(&color, "color", "", "Hex color such as #6366f1")

	return cmd
}

func newCategoryEditCmd(app *App) *cobra.Command {
	var title, color string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a category's title or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && color == "" {
				return errors.New("nothing to change: pass --title or --color")
			}
			if err := validateColor(color); err != nil {
				return err
			}
			var id string
			res, err := applyMutation(cmd, app, func(s editor.Session) error {
				var err error
				if id, err = resolveIn(s, args[0], domain.KindCategory); err != nil {
					return err
				}
				editor.EditCategory(s, id, title, color)
				return nil
			})
			if err != nil {
				return err
			}
			reportUpdated(cmd, res, domain.KindCategory, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVar(&color, "color", "", "New hex color")

	return cmd
}
