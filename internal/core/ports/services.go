package ports

import (
	"context"

	"github.com/lorrc/support-analytics/internal/core/domain"
)

// AnalyticsService defines the read-only reporting operations.
type AnalyticsService interface {
	GetMetrics(ctx context.Context, selector domain.RangeSelector) (*domain.MetricsSummary, error)
	GetAutomationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error)
	GetEscalationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error)
	GetFirstResponseTrend(ctx context.Context, selector domain.RangeSelector) ([]domain.FRTPoint, error)
	GetResolutionTime(ctx context.Context, selector domain.RangeSelector) (*domain.ResolutionTime, error)
	GetAgents(ctx context.Context) (*domain.AgentsReport, error)
}

// SendNotificationParams defines the input for a push dispatch.
type SendNotificationParams struct {
	Token string
	Title string
	Body  string
}

// NotificationService dispatches push notifications.
type NotificationService interface {
	Send(ctx context.Context, params SendNotificationParams) (*domain.PushReceipt, error)
}

// PushProvider is the external messaging provider.
type PushProvider interface {
	Send(ctx context.Context, msg domain.PushMessage) (*domain.PushReceipt, error)
}

// InAppBroadcaster delivers notifications to connected dashboard clients.
// Delivery is best effort; the return value is the number of connections
// the notification was queued for.
type InAppBroadcaster interface {
	DeliverToDevice(deviceToken string, notification domain.InAppNotification) int
}
