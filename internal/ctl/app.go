// Package ctl implements the analyticsctl operations tool.
package ctl

import (
	"context"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lorrc/support-analytics/internal/adapters/secondary/push"
	"github.com/lorrc/support-analytics/internal/config"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// ProviderFactory builds the push provider used by the notify command.
type ProviderFactory func(ctx context.Context) (ports.PushProvider, error)

// App holds what the commands share.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	out         io.Writer
	newProvider ProviderFactory
}

// NewApp creates the tool. The push provider follows the Firebase settings
// in cfg.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		out:    out,
		newProvider: func(ctx context.Context) (ports.PushProvider, error) {
			return push.NewProvider(ctx, push.FCMConfig{
				ProjectID:       cfg.Firebase.ProjectID,
				CredentialsFile: cfg.Firebase.CredentialsFile,
				CredentialsJSON: cfg.Firebase.CredentialsJSON,
			}, logger)
		},
	}
}

// WithProviderFactory replaces the push provider, for tests.
func (a *App) WithProviderFactory(f ProviderFactory) *App {
	a.newProvider = f
	return a
}

// Command returns the root command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:  "analyticsctl",
		Usage: "operate the support analytics service",
		Commands: []*cli.Command{
			a.newMigrateCommand(),
			a.newNotifyCommand(),
			a.newTokenCommand(),
		},
	}
}
