package cli

import (
	"fmt"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show or set today's learning goals",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanSetCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's progress against the goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := app.Store.GetDailyPlan()
			if asJSON {
				return writeJSON(cmd, plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newPlanSetCmd(app *App) *cobra.Command {
	var questions, minutes int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the daily question and minute goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := app.Store.GetDailyPlan()
			if !cmd.Flags().Changed("questions") {
				questions = current.TargetQuestions
			}
			if !cmd.Flags().Changed("minutes") {
				minutes = current.TargetMinutes
			}
			q, m := app.Store.SetDailyTargets(questions, minutes)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goals: %d questions, %s\n", q, formatter.FormatMinutes(m))
			return nil
		},
	}

	cmd.Flags().IntVar(&questions, "questions", 0, "Questions per day (1-200)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes per day (1-240)")
	cmd.MarkFlagsOneRequired("questions", "minutes")
	return cmd
}

func newChallengesCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Show today's challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.CheckCompletion()
			view := app.Store.GetDailyChallenges()
			if asJSON {
				return writeJSON(cmd, view)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChallenges(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
