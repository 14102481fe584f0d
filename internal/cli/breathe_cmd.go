package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/era/internal/breath"
	"github.com/alexanderramin/era/internal/cli/formatter"
	"github.com/alexanderramin/era/internal/config"
	"github.com/alexanderramin/era/internal/contract"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type sessionRunner func(ctx context.Context, app *App, out io.Writer, timing breath.Timing) (*domain.SessionRecord, error)

func newBreatheCmd(app *App) *cobra.Command {
	timing := app.Config.Timing
	var plain bool

	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Run one guided breathing session",
		Long: "Runs inhale, hold and exhale once and records the session when it completes.\n" +
			"Press q or Ctrl+C to stop early; stopped sessions are not saved.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := timing.Validate(); err != nil {
				return err
			}
			cfg := app.Config
			cfg.Timing = timing

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			ok, err := app.Sessions.CanStart(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return limitReachedError()
			}

			var run sessionRunner = runPlainSession
			if !plain && app.interactive() {
				run = runTUISession
			}

			rec, err := run(ctx, app, out, cfg.BreathTiming())
			switch {
			case errors.Is(err, context.Canceled):
				fmt.Fprintln(out, formatter.Dim("Session cancelled."))
				return nil
			case errors.Is(err, service.ErrSessionLimitReached):
				return limitReachedError()
			case err != nil:
				return err
			}

			progress := app.Analytics.GoalProgress(context.WithoutCancel(ctx))
			fmt.Fprintln(out, formatter.FormatSessionComplete(rec, contract.NewGoalProgressView(progress)))
			return nil
		},
	}

	config.BindTimingFlags(cmd.Flags(), &timing)
	cmd.Flags().BoolVar(&plain, "plain", false, "Print phase lines instead of the animated view")

	return cmd
}

func limitReachedError() error {
	return fmt.Errorf("%w: upgrade to keep breathing with era", service.ErrSessionLimitReached)
}

// runPlainSession prints one line per phase. Used when stdout is not a
// terminal or --plain is set.
func runPlainSession(ctx context.Context, app *App, out io.Writer, timing breath.Timing) (*domain.SessionRecord, error) {
	var last domain.Phase
	obs := breath.ObserverFunc(func(f breath.Frame) {
		if f.Gap || f.Phase == last {
			return
		}
		last = f.Phase
		fmt.Fprintln(out, formatter.FormatPhaseLine(f.Phase, timing.PhaseDuration(f.Phase).Seconds()))
	})
	return app.Sessions.StartSession(ctx, obs, service.WithTiming(timing))
}

// runTUISession runs the session in the background and renders frames with
// bubbletea. Quitting the view cancels the session.
func runTUISession(ctx context.Context, app *App, out io.Writer, timing breath.Timing) (*domain.SessionRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newBreatheModel(timing), tea.WithOutput(out))

	type result struct {
		rec *domain.SessionRecord
		err error
	}
	done := make(chan result, 1)
	go func() {
		obs := breath.ObserverFunc(func(f breath.Frame) { p.Send(frameMsg(f)) })
		rec, err := app.Sessions.StartSession(ctx, obs, service.WithTiming(timing))
		done <- result{rec: rec, err: err}
		p.Send(sessionDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("running breathing view: %w", err)
	}

	cancel()
	r := <-done
	return r.rec, r.err
}
