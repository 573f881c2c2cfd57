package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// NotificationService forwards push notifications to the provider and
// mirrors delivered ones to connected in-app clients.
type NotificationService struct {
	provider    ports.PushProvider
	broadcaster ports.InAppBroadcaster
	logger      *slog.Logger
}

var _ ports.NotificationService = (*NotificationService)(nil)

// NewNotificationService creates a new notification service. broadcaster may be nil.
func NewNotificationService(provider ports.PushProvider, broadcaster ports.InAppBroadcaster, logger *slog.Logger) ports.NotificationService {
	return &NotificationService{
		provider:    provider,
		broadcaster: broadcaster,
		logger:      logger.With("component", "notification_service"),
	}
}

// Send builds the push payload and hands it to the provider synchronously.
// Fields are not validated; the provider is the judge of a bad message.
func (s *NotificationService) Send(ctx context.Context, params ports.SendNotificationParams) (*domain.PushReceipt, error) {
	msg := domain.NewPushMessage(params.Token, params.Title, params.Body)

	receipt, err := s.provider.Send(ctx, msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "push dispatch failed",
			"error", apperrors.ProviderMessage(err),
		)
		return nil, err
	}

	if s.broadcaster != nil {
		delivered := s.broadcaster.DeliverToDevice(msg.Token, domain.NewInAppNotification(msg, *receipt))
		s.logger.DebugContext(ctx, "in-app notification delivered",
			"message_id", receipt.MessageID,
			"connections", delivered,
		)
	}

	return receipt, nil
}
