package cli

import (
	"fmt"

	"github.com/alexanderramin/tododoc/internal/cli/formatter"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/importer"
	"github.com/alexanderramin/tododoc/internal/render"
	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var title string
	var example bool

	cmd := &cobra.Command{
		Use:   "init [NAME]",
		Short: "Create a document",
		Long:  "Create a document. NAME defaults to --doc. With --example the document starts with sample categories and items.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := app.Document
			if len(args) == 1 {
				name = args[0]
			}
			root := domain.NewRoot()
			if example {
				root = importer.Example()
			}
			doc, err := app.Docs.Create(cmd.Context(), name, title, root)
			if err != nil {
				return err
			}
			st := render.Count(doc.Root)
			fmt.Fprintf(cmd.OutOrStdout(), "Created document %s %s (%d categories, %d items)\n",
				formatter.Bold(doc.Name), formatter.Dim(doc.DisplayID()), st.Categories, st.Items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Document title")
	cmd.Flags().BoolVar(&example, "example", false, "Seed with sample content")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := app.Docs.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocumentList(docs, app.Document, app.now()))
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a document and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete %q without --force", args[0])
			}
			if err := app.Docs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %s\n", formatter.Bold(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm deletion")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the document as JSON, Markdown or HTML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}
			return app.Docs.Export(cmd.Context(), app.Document, f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|markdown|html)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the document's tree with a JSON file",
		Args: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				fmt.Fprint(cmd.OutOrStdout(), importer.Schema())
				return nil
			}
			doc, err := app.Docs.Import(cmd.Context(), app.Document, args[0])
			if err != nil {
				return err
			}
			st := render.Count(doc.Root)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories and %d items into %s (revision %d)\n",
				st.Categories, st.Items, formatter.Bold(doc.Name), doc.Revision)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the JSON schema instead of importing")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes to the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Docs.History(cmd.Context(), app.Document, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(events, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events")

	return cmd
}
