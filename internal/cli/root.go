package cli

import (
	"time"

	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the document service and the settings
// the root command's flags adjust.
type App struct {
	Docs    service.DocumentService
	Version string
	// Document is the name of the document commands operate on. The --doc
	// flag overrides the configured value.
	Document string
	// Defaults are shown as placeholders in the TUI edit form.
	Defaults editor.Defaults
	Now      func() time.Time
	// IsInteractive reports whether stdin and stdout are a terminal.
	IsInteractive func() bool
	// SetVerbose raises the log level to debug. May be nil.
	SetVerbose func()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tododoc" command and registers all
// subcommands against the provided App. Run without a subcommand it opens
// the TUI on a terminal and prints the outline otherwise.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tododoc",
		Short:         "Hierarchical to-do documents for the terminal",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.SetVerbose != nil {
				app.SetVerbose()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd, app)
			}
			return runShow(cmd, app, showOptions{})
		},
	}

	root.PersistentFlags().StringVarP(&app.Document, "doc", "d", app.Document, "Document name")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log service activity to stderr")

	root.AddCommand(
		newCategoryCmd(app),
		newSectionCmd(app),
		newItemCmd(app),
		newSubtaskCmd(app),
		newNoteCmd(app),
		newShowCmd(app),
		newStatsCmd(app),
		newInitCmd(app),
		newListCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newHistoryCmd(app),
		newTUICmd(app),
		newMCPCmd(app),
	)

	return root
}
