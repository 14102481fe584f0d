package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/era/internal/cli/formatter"
	"github.com/alexanderramin/era/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal [sessions]",
		Short: "Show or set the daily session goal",
		Long: "With no argument, shows today's progress (or asks for a new goal in a terminal).\n" +
			"With a number, sets the goal. Goals below 1 are raised to 1.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("goal must be a whole number, got %q", args[0])
				}
				stored := app.Analytics.SetDailyGoal(ctx, n)
				fmt.Fprintf(out, "Daily goal set to %d.\n", stored)
				return nil
			}

			if !app.interactive() {
				progress := contract.NewGoalProgressView(app.Analytics.GoalProgress(ctx))
				fmt.Fprintln(out, formatter.FormatGoal(progress))
				return nil
			}

			value := strconv.Itoa(app.Analytics.DailyGoal(ctx))
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Daily goal").
						Description("Breathing sessions per day").
						Value(&value).
						Validate(validateGoal),
				),
			).WithTheme(eraHuhTheme()).WithShowHelp(false)

			if err := form.RunWithContext(ctx); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(out, formatter.Dim("Goal unchanged."))
					return nil
				}
				return fmt.Errorf("reading goal: %w", err)
			}

			n, _ := strconv.Atoi(strings.TrimSpace(value))
			stored := app.Analytics.SetDailyGoal(ctx, n)
			fmt.Fprintf(out, "Daily goal set to %d.\n", stored)
			return nil
		},
	}

	return cmd
}
