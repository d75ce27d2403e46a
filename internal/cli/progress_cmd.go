package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func moduleList() string {
	keys := make([]string, len(domain.Modules))
	for i, m := range domain.Modules {
		keys[i] = string(m)
	}
	return strings.Join(keys, ", ")
}

func unknownModule(module string) error {
	return fmt.Errorf("unknown module %q (expected one of: %s)", module, moduleList())
}

func newStatsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cumulative progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Store.GetStats()
			if asJSON {
				return writeJSON(cmd, st)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(st))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newAnswerCmd(app *App) *cobra.Command {
	var points int
	var wrong bool

	cmd := &cobra.Command{
		Use:   "answer <module>",
		Short: "Record one answered question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Answers.Record(context.Background(), args[0], points, !wrong)
			if err != nil {
				return err
			}
			if !res.Accepted {
				return unknownModule(args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnswer(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&points, "points", 10, "Points for a correct answer")
	cmd.Flags().BoolVar(&wrong, "wrong", false, "Record the answer as wrong")
	return cmd
}

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Check and close play sessions",
	}

	cmd.AddCommand(
		newSessionEndCmd(app),
		newSessionCheckCmd(app),
	)

	return cmd
}

func newSessionEndCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "end [module]",
		Short: "Record the time spent in a finished session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module := ""
			if len(args) == 1 {
				if _, ok := domain.ParseModule(args[0]); !ok {
					return unknownModule(args[0])
				}
				module = args[0]
			}
			res, err := app.Sessions.End(context.Background(), module, time.Duration(minutes)*time.Minute)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newSessionCheckCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check parent limits and rest reminders for a running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := app.Sessions.Check(context.Background(), minutes)
			if err != nil && !errors.Is(err, service.ErrLocked) {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionCheck(check))
			return err
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes played in the running session")
	return cmd
}

func newLevelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Inspect and override module difficulty",
	}

	cmd.AddCommand(
		newLevelSetCmd(app),
		newLevelHistoryCmd(app),
	)

	return cmd
}

func newLevelSetCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set <module> <level>",
		Short: "Override a module's difficulty (1-3)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[1], err)
			}
			if err := app.requireParent(password); err != nil {
				return err
			}
			res, err := app.Answers.SetLevel(context.Background(), args[0], level)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s level set to %s\n", formatter.ModuleLabel(res.Module), formatter.LevelStars(res.To))
			fmt.Fprint(out, formatter.FormatUnlocks(res.Unlocks))
			return nil
		},
	}

	addPasswordFlag(cmd, &password)
	return cmd
}

func newLevelHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <module>",
		Short: "List a module's level changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := app.History.LevelHistory(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLevelHistory(changes))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var password string
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset <module|" + progress.ResetAll + ">",
		Short: "Clear progress for one module or everything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset is permanent; pass --yes to confirm")
			}
			if err := app.requireParent(password); err != nil {
				return err
			}
			if !app.Store.ResetProgress(args[0]) {
				return unknownModule(args[0])
			}
			target := strings.ToLower(strings.TrimSpace(args[0]))
			app.Store.AddNotification("reset", fmt.Sprintf("Progress reset: %s", target))
			fmt.Fprintf(cmd.OutOrStdout(), "Progress reset: %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	addPasswordFlag(cmd, &password)
	return cmd
}

func newFlushCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Write progress to disk now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress saved.")
			return nil
		},
	}
}
