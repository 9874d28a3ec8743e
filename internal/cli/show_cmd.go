package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tododoc/internal/cli/formatter"
	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/render"
	"github.com/alexanderramin/tododoc/internal/repository"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/spf13/cobra"
)

type showOptions struct {
	filter domain.FilterMode
	search string
	ids    bool
}

func newShowCmd(app *App) *cobra.Command {
	var filter filterValue
	var opts showOptions

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Print the document as an outline",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.filter = filter.mode
			return runShow(cmd, app, opts)
		},
	}

	cmd.Flags().Var(&filter, "filter", "Show all, active or completed items")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only show nodes whose text contains this")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "Show node ids")

	return cmd
}

// loadDocument returns the current document, or an empty unsaved one when
// it does not exist yet.
func loadDocument(ctx context.Context, app *App) (*domain.Document, error) {
	doc, err := app.Docs.Get(ctx, app.Document)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.Document{Name: app.Document, Root: domain.NewRoot()}, nil
	}
	return doc, err
}

func documentHeading(doc *domain.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.Name
}

func runShow(cmd *cobra.Command, app *App, opts showOptions) error {
	doc, err := loadDocument(cmd.Context(), app)
	if err != nil {
		return err
	}

	root := doc.Root
	if opts.filter != "" && opts.filter != domain.FilterAll {
		root = tree.Filter(root, opts.filter)
	}
	if opts.search != "" {
		root = tree.Search(root, opts.search)
	}

	var b strings.Builder
	b.WriteString(formatter.Header(documentHeading(doc)))
	b.WriteString("\n")

	items := formatter.ToOutline(root, app.now())
	switch {
	case len(doc.Root.Children) == 0:
		b.WriteString(formatter.Dim("Empty document. Start with: tododoc category add --title Work"))
		b.WriteString("\n")
	case len(items) == 0:
		b.WriteString(formatter.Dim("Nothing matches."))
		b.WriteString("\n")
	default:
		b.WriteString(formatter.RenderTree(items, formatter.TreeOptions{ShowIDs: opts.ids}))
		st := render.Count(doc.Root)
		b.WriteString("\n")
		b.WriteString(formatter.RenderProgress(st.Done(), st.Total(), 20))
		b.WriteString("\n")
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion counts for the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(documentHeading(doc), render.Count(doc.Root)))
			return nil
		},
	}
}
