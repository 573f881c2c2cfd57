package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-analytics/internal/core/domain"
)

// TicketFilter narrows ticket counts. Nil flags are not filtered on.
type TicketFilter struct {
	Window      domain.DateRange
	IsBot       *bool
	IsEscalated *bool
}

// TicketAnalyticsRepository runs the read aggregations over tickets.
type TicketAnalyticsRepository interface {
	CountTickets(ctx context.Context, filter TicketFilter) (int64, error)
	SummarizeTickets(ctx context.Context, window domain.DateRange) (*domain.TicketTotals, error)
	WeeklyFirstResponse(ctx context.Context, window domain.DateRange) ([]domain.WeeklyResponseTime, error)
	// AverageResolutionMinutes returns nil when no resolved ticket matched.
	AverageResolutionMinutes(ctx context.Context, window domain.DateRange) (*float64, error)
	CountAssigned(ctx context.Context, agentID uuid.UUID, window domain.DateRange) (int64, error)
}

// AgentRepository lists users with the agent role.
type AgentRepository interface {
	ListAgents(ctx context.Context) ([]*domain.User, error)
}

// ResultCache stores serialized analytics results. Get returns
// apperrors.ErrCacheMiss when the key is absent.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
