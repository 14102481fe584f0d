package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/era/internal/cli/formatter"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/spf13/cobra"
)

func newRemindersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"reminder"},
		Short:   "Manage daily breathing reminders",
	}

	cmd.AddCommand(
		newRemindersListCmd(app),
		newRemindersSetCmd(app),
		newRemindersClearCmd(app),
	)

	return cmd
}

func newRemindersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminder times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders, err := app.Reminders.List(cmd.Context())
			if err != nil {
				return err
			}
			return printReminders(cmd, app, reminders)
		},
	}
}

func newRemindersSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <HH:MM>...",
		Short: "Replace all reminders with the given times",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots := make([]domain.Reminder, 0, len(args))
			for _, a := range args {
				r, err := domain.ParseReminder(a)
				if err != nil {
					return err
				}
				slots = append(slots, r)
			}
			stored, err := app.Reminders.Schedule(cmd.Context(), slots)
			if err != nil {
				return err
			}
			return printReminders(cmd, app, stored)
		},
	}
}

func newRemindersClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Reminders.Schedule(cmd.Context(), nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminders cleared.")
			return nil
		},
	}
}

func printReminders(cmd *cobra.Command, app *App, reminders []domain.Reminder) error {
	now := app.now()
	next, err := app.Reminders.Next(cmd.Context(), now)
	if err != nil {
		return err
	}
	var (
		slot *domain.Reminder
		at   time.Time
	)
	if next != nil {
		slot, at = &next.Reminder, next.At
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReminders(reminders, slot, at, now))
	return nil
}
