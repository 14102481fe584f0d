package cli

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/era/internal/config"
	"github.com/alexanderramin/era/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Analytics service.AnalyticsService
	Sessions  service.SessionService
	Reminders service.ReminderService

	Config   config.Config
	Location *time.Location
	Now      func() time.Time

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	Logger  *slog.Logger
	Metrics http.Handler
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().In(a.location())
	}
	return a.Now().In(a.location())
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "era" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "era",
		Short:         "Guided breathing sessions with history and reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBreatheCmd(app),
		newStatsCmd(app),
		newGoalCmd(app),
		newSessionCmd(app),
		newRemindersCmd(app),
		newServeCmd(app),
	)

	return root
}
