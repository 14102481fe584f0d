package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/era/internal/cli/formatter"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
	"github.com/spf13/cobra"
)

// prefixSearchLimit bounds how many recent sessions a short ID is matched
// against.
const prefixSearchLimit = 500

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Browse recorded sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			sessions, err := app.Sessions.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of sessions to show")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionDetail(s, app.location()))
			return nil
		},
	}
}

// resolveSession accepts a full session ID or a unique prefix of a recent
// one, as printed by `session list`.
func resolveSession(ctx context.Context, app *App, input string) (*domain.SessionRecord, error) {
	s, err := app.Sessions.GetByID(ctx, input)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	recent, listErr := app.Sessions.ListRecent(ctx, prefixSearchLimit)
	if listErr != nil {
		return nil, listErr
	}
	var match *domain.SessionRecord
	for _, r := range recent {
		if !strings.HasPrefix(r.ID, input) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("session prefix %q is ambiguous", input)
		}
		match = r
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", input)
	}
	return match, nil
}
