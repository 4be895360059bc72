// Package app assembles the process: configuration, logger, API client and the
// session manager shared by every command.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/api"
	"github.com/finsec/cli/internal/config"
	"github.com/finsec/cli/internal/logging"
	"github.com/finsec/cli/internal/session"
)

// App holds the per-process collaborators
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	API     *api.Client
	Session *session.Manager
	Prompt  *Prompter
}

// New wires an App from cfg and resumes the persisted session, if any.
func New(cfg *config.Config) *App {
	level := cfg.Log.Level
	if config.IsDebug() {
		level = "debug"
	}
	logger := logging.New(level, cfg.Format.Colors)

	client := api.NewClient(cfg.Server.URL,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)

	mgr := session.New(client,
		session.WithStore(cfg),
		session.WithPolicy(cfg.Policy()),
		session.WithLogger(logger.With().Str("component", "session").Logger()),
		session.WithSignOutHook(func() {
			logger.Debug().Msg("session ended, login required")
		}),
	)
	mgr.Restore(cfg.Session.Token, cfg.SavedProfile())

	return &App{
		Config:  cfg,
		Logger:  logger,
		API:     client,
		Session: mgr,
		Prompt:  NewPrompter(),
	}
}

type contextKey struct{}

// NewContext returns ctx carrying a
func NewContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the App stored by NewContext
func FromContext(ctx context.Context) (*App, error) {
	if ctx == nil {
		return nil, errors.New("application not initialized")
	}
	a, ok := ctx.Value(contextKey{}).(*App)
	if !ok || a == nil {
		return nil, errors.New("application not initialized")
	}
	return a, nil
}

// FromCommand returns the App attached to a cobra command's context
func FromCommand(cmd *cobra.Command) (*App, error) {
	return FromContext(cmd.Context())
}
