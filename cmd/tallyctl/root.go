package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tally/internal/auth"
	"tally/internal/backend"
	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/notify"
	"tally/internal/services"
	"tally/internal/storage"
)

var flagUser string

var rootCmd = &cobra.Command{
	Use:           "tallyctl",
	Short:         "Personal finance tracker CLI",
	Long:          "Record income and expenses, set budgets and savings goals, and print reports against the local tally backend.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Email of the account to act as")
}

// env is the assembled runtime for one command invocation.
type env struct {
	store   storage.Store
	tracker *services.Tracker
	session *auth.Session
	cleanup backend.CleanupFunc
}

func (e *env) close() {
	if e.cleanup != nil {
		if err := e.cleanup(); err != nil {
			slog.Error("Storage cleanup failed", "error", err)
		}
	}
}

// openEnv loads configuration, opens the configured backend and
// resolves the --user flag into a session. Commands that mutate or
// query per-user state require it.
func openEnv(ctx context.Context, needUser bool) (*env, error) {
	cli.LoadEnvFile()

	// The CLI tolerates missing JWT settings since it never issues
	// tokens; only the backend selection must be valid.
	cfg := config.Load()
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	result, err := backend.NewFactory(quiet).Create(backendCfg)
	if err != nil {
		return nil, err
	}

	e := &env{
		store:   result.Store,
		tracker: services.NewTracker(result.Store, notify.LogNotifier{}),
		cleanup: result.Cleanup,
	}

	if needUser {
		if flagUser == "" {
			e.close()
			return nil, fmt.Errorf("--user is required")
		}
		u, err := e.store.Users().ByEmail(ctx, flagUser)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("resolve user %q: %w", flagUser, err)
		}
		e.session = auth.NewSession(u)
	}
	return e, nil
}
