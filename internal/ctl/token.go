package ctl

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/lorrc/support-analytics/internal/auth"
	"github.com/lorrc/support-analytics/internal/core/domain"
)

var knownRoles = []string{domain.RoleAdmin, domain.RoleAgent, domain.RoleCustomer}

func (a *App) newTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint an access token for a user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user-id",
				Usage:    "user id (uuid)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "role",
				Usage: "role claim: admin, agent or customer",
				Value: domain.RoleAdmin,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if a.cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is required")
			}

			userID, err := uuid.Parse(command.String("user-id"))
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}

			role := command.String("role")
			if !slices.Contains(knownRoles, role) {
				return fmt.Errorf("unknown role %q", role)
			}

			tm := auth.NewTokenManager(a.cfg.JWT.Secret, a.cfg.JWT.AccessTokenTTL)
			token, err := tm.GenerateToken(userID, role)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(a.out, token)
			return err
		},
	}
}
