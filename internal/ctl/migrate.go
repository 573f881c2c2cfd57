package ctl

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lorrc/support-analytics/internal/adapters/secondary/postgres"
)

func (a *App) newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or roll back database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "migrations directory or source URL",
				Value: a.cfg.Database.MigrationsPath,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(ctx context.Context, command *cli.Command) error {
					return a.withMigrator(command, func(m *postgres.Migrator) error {
						if err := m.Up(); err != nil {
							return err
						}
						return a.printVersion(m)
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "number of migrations to roll back",
						Value: 1,
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					steps := int(command.Int("steps"))
					if steps < 1 {
						return fmt.Errorf("steps must be at least 1, got %d", steps)
					}
					return a.withMigrator(command, func(m *postgres.Migrator) error {
						if err := m.Down(steps); err != nil {
							return err
						}
						return a.printVersion(m)
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(ctx context.Context, command *cli.Command) error {
					return a.withMigrator(command, a.printVersion)
				},
			},
		},
	}
}

func (a *App) withMigrator(command *cli.Command, fn func(*postgres.Migrator) error) error {
	if a.cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}

	m, err := postgres.NewMigrator(command.String("path"), a.cfg.Database.URL, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			a.logger.Warn("failed to close migrator", "error", cerr)
		}
	}()

	return fn(m)
}

func (a *App) printVersion(m *postgres.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		_, err = fmt.Fprintf(a.out, "schema version %d (dirty)\n", version)
		return err
	}
	_, err = fmt.Fprintf(a.out, "schema version %d\n", version)
	return err
}
