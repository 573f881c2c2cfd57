package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// AnalyticsServiceConfig holds the clock and time zone used to build
// reporting windows.
type AnalyticsServiceConfig struct {
	// Location is the zone in which the agents table week starts.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// AnalyticsService implements the dashboard reporting use cases
type AnalyticsService struct {
	tickets  ports.TicketAnalyticsRepository
	agents   ports.AgentRepository
	location *time.Location
	now      func() time.Time
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	tickets ports.TicketAnalyticsRepository,
	agents ports.AgentRepository,
	cfg AnalyticsServiceConfig,
) ports.AnalyticsService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &AnalyticsService{
		tickets:  tickets,
		agents:   agents,
		location: loc,
		now:      now,
	}
}

// GetMetrics returns ticket volume, spend, payout and game averages for the window.
func (s *AnalyticsService) GetMetrics(ctx context.Context, selector domain.RangeSelector) (*domain.MetricsSummary, error) {
	window := domain.ResolveDateRange(selector, s.now())

	totals, err := s.tickets.SummarizeTickets(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("summarize tickets: %w", err)
	}

	summary := domain.NewMetricsSummary(selector, *totals)
	return &summary, nil
}

// GetAutomationRate splits tickets into bot-handled and human-handled shares.
func (s *AnalyticsService) GetAutomationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	isBot := true
	return s.shareOf(ctx, selector, ports.TicketFilter{IsBot: &isBot})
}

// GetEscalationRate splits tickets into escalated and non-escalated shares.
func (s *AnalyticsService) GetEscalationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	isEscalated := true
	return s.shareOf(ctx, selector, ports.TicketFilter{IsEscalated: &isEscalated})
}

func (s *AnalyticsService) shareOf(ctx context.Context, selector domain.RangeSelector, flagged ports.TicketFilter) (*domain.ShareSplit, error) {
	window := domain.ResolveDateRange(selector, s.now())

	total, err := s.tickets.CountTickets(ctx, ports.TicketFilter{Window: window})
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	flagged.Window = window
	part, err := s.tickets.CountTickets(ctx, flagged)
	if err != nil {
		return nil, fmt.Errorf("count flagged tickets: %w", err)
	}

	split := domain.NewShareSplit(part, total)
	return &split, nil
}

// GetFirstResponseTrend returns the weekly bot/human first-response averages.
func (s *AnalyticsService) GetFirstResponseTrend(ctx context.Context, selector domain.RangeSelector) ([]domain.FRTPoint, error) {
	window := domain.ResolveDateRange(selector, s.now())

	buckets, err := s.tickets.WeeklyFirstResponse(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("weekly first response: %w", err)
	}

	return domain.NewFRTSeries(buckets), nil
}

// GetResolutionTime returns the average resolution time of resolved tickets.
func (s *AnalyticsService) GetResolutionTime(ctx context.Context, selector domain.RangeSelector) (*domain.ResolutionTime, error) {
	window := domain.ResolveDateRange(selector, s.now())

	avg, err := s.tickets.AverageResolutionMinutes(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("average resolution time: %w", err)
	}

	rt := domain.NewResolutionTime(selector, avg)
	return &rt, nil
}

// GetAgents counts this week's assigned tickets for every agent. The counts
// are fetched concurrently, one query per agent, and keep the agent order.
func (s *AnalyticsService) GetAgents(ctx context.Context) (*domain.AgentsReport, error) {
	week := domain.CurrentWeek(s.now(), s.location)

	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	counts := make([]int64, len(agents))
	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range agents {
		g.Go(func() error {
			n, err := s.tickets.CountAssigned(gctx, agent.ID, week)
			if err != nil {
				return fmt.Errorf("count tickets for agent %s: %w", agent.ID, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]domain.AgentWorkload, 0, len(agents))
	for i, agent := range agents {
		rows = append(rows, domain.AgentWorkload{
			Name:         agent.Name,
			Department:   agent.Department,
			TotalTickets: counts[i],
			Avatar:       agent.AvatarOrEmpty(),
		})
	}

	return &domain.AgentsReport{
		Week:   "current",
		Agents: rows,
	}, nil
}
