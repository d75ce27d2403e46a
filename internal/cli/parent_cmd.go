package cli

import (
	"fmt"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
)

func newParentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parent",
		Short: "Parent password, limits and notifications",
	}

	cmd.AddCommand(
		newParentPasswordCmd(app),
		newParentVerifyCmd(app),
		newParentLimitsCmd(app),
		newParentCheckCmd(app),
		newParentNotificationsCmd(app),
		newParentNotifyCmd(app),
	)

	return cmd
}

func newParentPasswordCmd(app *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Set or change the parent password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireParent(current); err != nil {
				return err
			}
			pw, err := app.password(next, "New parent password")
			if err != nil {
				return err
			}
			if err := validatePassword(pw); err != nil {
				return err
			}
			if err := app.Store.SetParentPassword(pw); err != nil {
				return fmt.Errorf("setting parent password: %w", err)
			}
			app.Store.AddNotification("password", "Parent password changed")
			fmt.Fprintln(cmd.OutOrStdout(), "Parent password updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password, when one is set")
	cmd.Flags().StringVar(&next, "new", "", "New password (prompted when omitted in a terminal)")
	return cmd
}

func newParentVerifyCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a parent password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Store.HasParentPassword() {
				fmt.Fprintln(cmd.OutOrStdout(), "No parent password is set.")
				return nil
			}
			if err := app.requireParent(password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Password accepted."))
			return nil
		},
	}

	addPasswordFlag(cmd, &password)
	return cmd
}

func newParentLimitsCmd(app *App) *cobra.Command {
	var password string
	var daily, session, bonus, start, end int
	var hourLock, lock bool

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show or change time limits and allowed hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var l progress.Limits
			changed := false
			intFlag := func(name string, v int, dst **int) {
				if flags.Changed(name) {
					*dst = &v
					changed = true
				}
			}
			boolFlag := func(name string, v bool, dst **bool) {
				if flags.Changed(name) {
					*dst = &v
					changed = true
				}
			}
			intFlag("daily", daily, &l.DailyLimitMin)
			intFlag("session", session, &l.SessionLimitMin)
			intFlag("weekend-bonus", bonus, &l.WeekendBonusMin)
			intFlag("start-hour", start, &l.AllowedStartHour)
			intFlag("end-hour", end, &l.AllowedEndHour)
			boolFlag("hour-lock", hourLock, &l.TimeLockEnabled)
			boolFlag("lock", lock, &l.LockEnabled)

			if !changed {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParentSettings(app.Store.ParentSettings()))
				return nil
			}
			if err := app.requireParent(password); err != nil {
				return err
			}
			settings := app.Store.SetParentLimits(l)
			app.Store.AddNotification("limits", "Parent limits changed")
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParentSettings(settings))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&daily, "daily", 0, "Daily limit in minutes (0 = none)")
	f.IntVar(&session, "session", 0, "Session limit in minutes (0 = none)")
	f.IntVar(&bonus, "weekend-bonus", 0, "Extra daily minutes on weekends")
	f.IntVar(&start, "start-hour", 0, "First allowed hour (0-24)")
	f.IntVar(&end, "end-hour", 0, "Hour play must stop (0-24)")
	f.BoolVar(&hourLock, "hour-lock", false, "Enforce the allowed hours")
	f.BoolVar(&lock, "lock", false, "Lock play when a limit is reached")
	addPasswordFlag(cmd, &password)
	return cmd
}

func newParentCheckCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show whether play is currently allowed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			access := app.Store.CheckAccess(minutes)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionCheck(service.SessionCheck{Access: access}))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes played in the running session")
	return cmd
}

func newParentNotificationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List parent notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNotifications(app.Store.Notifications()))
			return nil
		},
	}
}

func newParentNotifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <kind> <message>",
		Short: "Add a parent notification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := app.Store.AddNotification(args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Notification %s added\n", formatter.Dim(n.ID[:8]))
			return nil
		},
	}
}
