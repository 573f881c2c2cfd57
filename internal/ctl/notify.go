package ctl

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lorrc/support-analytics/internal/core/ports"
	"github.com/lorrc/support-analytics/internal/core/services"
)

func (a *App) newNotifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "send a push notification through the configured provider",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Usage: "device registration token"},
			&cli.StringFlag{Name: "title", Usage: "notification title"},
			&cli.StringFlag{Name: "body", Usage: "notification body"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			provider, err := a.newProvider(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize push provider: %w", err)
			}

			// No in-app channel outside the server.
			svc := services.NewNotificationService(provider, nil, a.logger)
			receipt, err := svc.Send(ctx, ports.SendNotificationParams{
				Token: command.String("token"),
				Title: command.String("title"),
				Body:  command.String("body"),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.out, "sent %s\n", receipt.MessageID)
			return err
		},
	}
}
