package cli

import (
	"fmt"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Manage spaced-repetition review items",
	}

	cmd.AddCommand(
		newReviewAddCmd(app),
		newReviewUpdateCmd(app),
		newReviewDueCmd(app),
		newReviewStatsCmd(app),
		newReviewCalendarCmd(app),
		newReviewRemoveCmd(app),
	)

	return cmd
}

func newReviewAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <content>",
		Short: "Schedule an item for review tomorrow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.AddReviewItem(args[0], args[1]) {
				return fmt.Errorf("review item %q already exists in %q or is blank", args[1], args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s reviews\n", formatter.Bold(args[1]), args[0])
			return nil
		},
	}
}

func newReviewUpdateCmd(app *App) *cobra.Command {
	var wrong bool

	cmd := &cobra.Command{
		Use:   "update <category> <content>",
		Short: "Record a review outcome and reschedule the item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := app.Store.UpdateReviewItem(args[0], args[1], !wrong)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewUpdate(args[0], args[1], u))
			if !u.Found {
				return fmt.Errorf("review item %q not found in %q", args[1], args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wrong, "wrong", false, "The item was not recalled")
	return cmd
}

func newReviewDueCmd(app *App) *cobra.Command {
	var category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due today, most overdue first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			due := app.Store.DueReviews(category)
			if asJSON {
				return writeJSON(cmd, due)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDueReviews(due))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newReviewStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize review items per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewStats(app.Store.ReviewStats()))
			return nil
		},
	}
}

func newReviewCalendarCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show how many reviews fall due each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(app.Store.ReviewCalendar(days)))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")
	return cmd
}

func newReviewRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <category> <content>",
		Short: "Delete a review item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.RemoveReviewItem(args[0], args[1]) {
				return fmt.Errorf("review item %q not found in %q", args[1], args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s reviews\n", args[1], args[0])
			return nil
		},
	}
}

func newWrongCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrong",
		Short: "Manage the wrong-question book",
	}

	cmd.AddCommand(
		newWrongListCmd(app),
		newWrongAddCmd(app),
		newWrongRemoveCmd(app),
	)

	return cmd
}

func newWrongListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [module]",
		Short: "List wrongly answered questions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module := ""
			if len(args) == 1 {
				module = args[0]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWrongQuestions(app.Store.WrongQuestions(module)))
			return nil
		},
	}
}

func newWrongAddCmd(app *App) *cobra.Command {
	var answer string

	cmd := &cobra.Command{
		Use:   "add <module> <question>",
		Short: "File a wrongly answered question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.AddWrongQuestion(args[0], args[1], answer) {
				return fmt.Errorf("cannot file %q under %q", args[1], args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filed %s\n", formatter.Bold(args[1]))
			return nil
		},
	}

	cmd.Flags().StringVar(&answer, "answer", "", "The correct answer")
	return cmd
}

func newWrongRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <module> <question>",
		Short: "Remove a question from the book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.RemoveWrongQuestion(args[0], args[1]) {
				return fmt.Errorf("question %q not found under %q", args[1], args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}
}

func newMasteredCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mastered",
		Short: "Track mastered items",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <category> <id>",
			Short: "Mark an item as mastered",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				added, u := app.Store.AddMasteredItem(args[0], args[1])
				out := cmd.OutOrStdout()
				if added {
					fmt.Fprintf(out, "Mastered %s\n", formatter.Bold(args[1]))
				} else {
					fmt.Fprintf(out, "%s was already mastered\n", args[1])
				}
				fmt.Fprint(out, formatter.FormatUnlocks(u))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list [category]",
			Short: "List mastered items",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				category := ""
				if len(args) == 1 {
					category = args[0]
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMastered(app.Store.MasteredItems(category)))
				return nil
			},
		},
	)

	return cmd
}
