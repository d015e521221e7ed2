package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/service"
)

// App holds references to all services used by CLI commands.
type App struct {
	Study    service.StudyService
	Catalog  service.CatalogService
	Transfer service.TransferService

	// Drafts and Tips are nil when content generation is disabled.
	Drafts intelligence.ResourceDraftService
	Tips   *service.TipTracker

	Prompter Prompter
	In       io.Reader

	// IsInteractive reports whether stdin is a terminal. Prompts and the
	// tip spinner only run when it returns true.
	IsInteractive func() bool

	// AssumeYes is bound to --yes and skips confirmation prompts.
	AssumeYes bool

	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) stdin() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

// NewRootCmd creates the top-level "studysync" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Prompter == nil {
		app.Prompter = huhPrompter{}
	}

	root := &cobra.Command{
		Use:           "studysync",
		Short:         "Study tracker with a daily plan generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&app.AssumeYes, "yes", "y", false, "Skip confirmation prompts")
	// Read by main before the command tree is built; declared here so
	// cobra accepts it.
	root.PersistentFlags().String("config", "", "Path to a config file")

	root.AddCommand(
		newStatusCmd(app),
		newStageCmd(app),
		newResourceCmd(app),
		newModuleCmd(app),
		newPlanCmd(app),
		newTaskCmd(app),
		newReviewCmd(app),
		newDataCmd(app),
	)

	return root
}
