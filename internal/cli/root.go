package cli

import (
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
)

// App holds the store and services used by CLI commands.
type App struct {
	Store    *progress.Store
	Answers  service.AnswerService
	Sessions service.SessionService
	History  service.HistoryService

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// PromptPassword asks for a password. Nil uses a huh form.
	PromptPassword func(title string) (string, error)
}

// NewRootCmd creates the top-level "sprout" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "sprout",
		Short:        "Learning progress engine for kids' practice games",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStatsCmd(app),
		newAnswerCmd(app),
		newSessionCmd(app),
		newLevelCmd(app),
		newReviewCmd(app),
		newWrongCmd(app),
		newMasteredCmd(app),
		newPlanCmd(app),
		newChallengesCmd(app),
		newParentCmd(app),
		newHistoryCmd(app),
		newExportCmd(app),
		newResetCmd(app),
		newFlushCmd(app),
	)

	return root
}
