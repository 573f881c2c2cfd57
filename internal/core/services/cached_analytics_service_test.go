package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/mocks"
	"github.com/lorrc/support-analytics/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedAnalyticsService_Miss(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockAnalyticsService()
	cache := mocks.NewMockResultCache()
	svc := services.NewCachedAnalyticsService(next, cache, 30*time.Second, discardLogger())

	summary := &domain.MetricsSummary{Range: domain.RangeWeekly, TotalTickets: 42}
	cache.On("Get", ctx, "analytics:v1:metrics:weekly", mock.Anything).Return(apperrors.ErrCacheMiss)
	next.On("GetMetrics", ctx, domain.RangeWeekly).Return(summary, nil)
	cache.On("Set", ctx, "analytics:v1:metrics:weekly", summary, 30*time.Second).Return(nil)

	got, err := svc.GetMetrics(ctx, domain.RangeWeekly)

	require.NoError(t, err)
	assert.Equal(t, summary, got)
	next.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCachedAnalyticsService_Hit(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockAnalyticsService()
	cache := mocks.NewMockResultCache()
	svc := services.NewCachedAnalyticsService(next, cache, time.Minute, discardLogger())

	cached := &domain.ShareSplit{Flagged: 30, Unflagged: 70, Total: 10}
	cache.On("Get", ctx, "analytics:v1:automation-rate:monthly", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(**domain.ShareSplit)
			*dest = cached
		}).
		Return(nil)

	got, err := svc.GetAutomationRate(ctx, domain.RangeMonthly)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	next.AssertNotCalled(t, "GetAutomationRate", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedAnalyticsService_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockAnalyticsService()
	cache := mocks.NewMockResultCache()
	svc := services.NewCachedAnalyticsService(next, cache, time.Minute, discardLogger())

	report := &domain.AgentsReport{Week: "current", Agents: []domain.AgentWorkload{{Name: "Alice"}}}
	cache.On("Get", ctx, "analytics:v1:agents", mock.Anything).Return(errors.New("dial tcp: connection refused"))
	next.On("GetAgents", ctx).Return(report, nil)
	cache.On("Set", ctx, "analytics:v1:agents", report, time.Minute).Return(errors.New("dial tcp: connection refused"))

	got, err := svc.GetAgents(ctx)

	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestCachedAnalyticsService_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockAnalyticsService()
	cache := mocks.NewMockResultCache()
	svc := services.NewCachedAnalyticsService(next, cache, time.Minute, discardLogger())

	queryErr := errors.New("query failed")
	cache.On("Get", ctx, "analytics:v1:frt:weekly", mock.Anything).Return(apperrors.ErrCacheMiss)
	next.On("GetFirstResponseTrend", ctx, domain.RangeWeekly).Return(nil, queryErr)

	got, err := svc.GetFirstResponseTrend(ctx, domain.RangeWeekly)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, queryErr)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedAnalyticsService_UnknownSelectorsShareOneKey(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockAnalyticsService()
	cache := mocks.NewMockResultCache()
	svc := services.NewCachedAnalyticsService(next, cache, time.Minute, discardLogger())

	split := &domain.ShareSplit{}
	cache.On("Get", ctx, "analytics:v1:escalation-rate:none", mock.Anything).Return(apperrors.ErrCacheMiss)
	next.On("GetEscalationRate", ctx, mock.Anything).Return(split, nil)
	cache.On("Set", ctx, "analytics:v1:escalation-rate:none", split, time.Minute).Return(nil)

	for _, selector := range []domain.RangeSelector{"yearly", " monthly", "x:y:z"} {
		_, err := svc.GetEscalationRate(ctx, selector)
		require.NoError(t, err)
	}

	cache.AssertNumberOfCalls(t, "Get", 3)
	cache.AssertNumberOfCalls(t, "Set", 3)
	cache.AssertNotCalled(t, "Get", ctx, "analytics:v1:escalation-rate:yearly", mock.Anything)
}
