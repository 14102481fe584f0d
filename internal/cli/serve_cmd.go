package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/era/internal/api"
	"github.com/alexanderramin/era/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	server := app.Config.Server

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve session analytics as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			cfg.Server = server
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(newAPIServices(app), api.NewClientLimiter(server.RateLimit, server.Burst))
			return api.Serve(ctx, server.Addr, router, app.logger())
		},
	}

	config.BindServerFlags(cmd.Flags(), &server)

	return cmd
}

func newAPIServices(app *App) api.Services {
	return api.Services{
		Summary:     app.Analytics,
		DailyCounts: app.Analytics,
		SessionsOn:  app.Analytics,
		Goal:        app.Analytics,
		Reminders:   app.Reminders,
		Metrics:     app.Metrics,
		Location:    app.location(),
		Now:         app.now,
	}
}
