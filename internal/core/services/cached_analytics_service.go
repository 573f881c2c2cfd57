package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

const (
	cacheKeyPrefix  = "analytics:v1:"
	unknownRangeKey = "none"
)

// CachedAnalyticsService is a read-through cache in front of another
// AnalyticsService. Cache errors never fail a request.
type CachedAnalyticsService struct {
	next   ports.AnalyticsService
	cache  ports.ResultCache
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.AnalyticsService = (*CachedAnalyticsService)(nil)

// NewCachedAnalyticsService wraps next with cache.
func NewCachedAnalyticsService(next ports.AnalyticsService, cache ports.ResultCache, ttl time.Duration, logger *slog.Logger) ports.AnalyticsService {
	return &CachedAnalyticsService{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "analytics_cache"),
	}
}

func (s *CachedAnalyticsService) GetMetrics(ctx context.Context, selector domain.RangeSelector) (*domain.MetricsSummary, error) {
	return readThrough(ctx, s, cacheKey("metrics", selector), func(ctx context.Context) (*domain.MetricsSummary, error) {
		return s.next.GetMetrics(ctx, selector)
	})
}

func (s *CachedAnalyticsService) GetAutomationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	return readThrough(ctx, s, cacheKey("automation-rate", selector), func(ctx context.Context) (*domain.ShareSplit, error) {
		return s.next.GetAutomationRate(ctx, selector)
	})
}

func (s *CachedAnalyticsService) GetEscalationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	return readThrough(ctx, s, cacheKey("escalation-rate", selector), func(ctx context.Context) (*domain.ShareSplit, error) {
		return s.next.GetEscalationRate(ctx, selector)
	})
}

func (s *CachedAnalyticsService) GetFirstResponseTrend(ctx context.Context, selector domain.RangeSelector) ([]domain.FRTPoint, error) {
	return readThrough(ctx, s, cacheKey("frt", selector), func(ctx context.Context) ([]domain.FRTPoint, error) {
		return s.next.GetFirstResponseTrend(ctx, selector)
	})
}

func (s *CachedAnalyticsService) GetResolutionTime(ctx context.Context, selector domain.RangeSelector) (*domain.ResolutionTime, error) {
	return readThrough(ctx, s, cacheKey("resolution-time", selector), func(ctx context.Context) (*domain.ResolutionTime, error) {
		return s.next.GetResolutionTime(ctx, selector)
	})
}

func (s *CachedAnalyticsService) GetAgents(ctx context.Context) (*domain.AgentsReport, error) {
	return readThrough(ctx, s, cacheKeyPrefix+"agents", func(ctx context.Context) (*domain.AgentsReport, error) {
		return s.next.GetAgents(ctx)
	})
}

func readThrough[T any](ctx context.Context, s *CachedAnalyticsService, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// cacheKey folds every unknown selector into one key; they all resolve to
// the same zero-length window.
func cacheKey(endpoint string, selector domain.RangeSelector) string {
	switch selector {
	case domain.RangeWeekly, domain.RangeMonthly:
		return cacheKeyPrefix + endpoint + ":" + selector.String()
	default:
		return cacheKeyPrefix + endpoint + ":" + unknownRangeKey
	}
}
