package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockTicketAnalyticsRepository is a mock implementation of ports.TicketAnalyticsRepository
type MockTicketAnalyticsRepository struct {
	mock.Mock
}

func NewMockTicketAnalyticsRepository() *MockTicketAnalyticsRepository {
	return &MockTicketAnalyticsRepository{}
}

func (m *MockTicketAnalyticsRepository) CountTickets(ctx context.Context, filter ports.TicketFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketAnalyticsRepository) SummarizeTickets(ctx context.Context, window domain.DateRange) (*domain.TicketTotals, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketTotals), args.Error(1)
}

func (m *MockTicketAnalyticsRepository) WeeklyFirstResponse(ctx context.Context, window domain.DateRange) ([]domain.WeeklyResponseTime, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyResponseTime), args.Error(1)
}

func (m *MockTicketAnalyticsRepository) AverageResolutionMinutes(ctx context.Context, window domain.DateRange) (*float64, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockTicketAnalyticsRepository) CountAssigned(ctx context.Context, agentID uuid.UUID, window domain.DateRange) (int64, error) {
	args := m.Called(ctx, agentID, window)
	return args.Get(0).(int64), args.Error(1)
}

// MockAgentRepository is a mock implementation of ports.AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func NewMockAgentRepository() *MockAgentRepository {
	return &MockAgentRepository{}
}

func (m *MockAgentRepository) ListAgents(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockResultCache is a mock implementation of ports.ResultCache
type MockResultCache struct {
	mock.Mock
}

func NewMockResultCache() *MockResultCache {
	return &MockResultCache{}
}

func (m *MockResultCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockResultCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// MockAnalyticsService is a mock implementation of ports.AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func NewMockAnalyticsService() *MockAnalyticsService {
	return &MockAnalyticsService{}
}

func (m *MockAnalyticsService) GetMetrics(ctx context.Context, selector domain.RangeSelector) (*domain.MetricsSummary, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSummary), args.Error(1)
}

func (m *MockAnalyticsService) GetAutomationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareSplit), args.Error(1)
}

func (m *MockAnalyticsService) GetEscalationRate(ctx context.Context, selector domain.RangeSelector) (*domain.ShareSplit, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareSplit), args.Error(1)
}

func (m *MockAnalyticsService) GetFirstResponseTrend(ctx context.Context, selector domain.RangeSelector) ([]domain.FRTPoint, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FRTPoint), args.Error(1)
}

func (m *MockAnalyticsService) GetResolutionTime(ctx context.Context, selector domain.RangeSelector) (*domain.ResolutionTime, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolutionTime), args.Error(1)
}

func (m *MockAnalyticsService) GetAgents(ctx context.Context) (*domain.AgentsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentsReport), args.Error(1)
}

// MockNotificationService is a mock implementation of ports.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) Send(ctx context.Context, params ports.SendNotificationParams) (*domain.PushReceipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushReceipt), args.Error(1)
}

// MockPushProvider is a mock implementation of ports.PushProvider
type MockPushProvider struct {
	mock.Mock
}

func NewMockPushProvider() *MockPushProvider {
	return &MockPushProvider{}
}

func (m *MockPushProvider) Send(ctx context.Context, msg domain.PushMessage) (*domain.PushReceipt, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushReceipt), args.Error(1)
}

// MockInAppBroadcaster is a mock implementation of ports.InAppBroadcaster
type MockInAppBroadcaster struct {
	mock.Mock
}

func NewMockInAppBroadcaster() *MockInAppBroadcaster {
	return &MockInAppBroadcaster{}
}

func (m *MockInAppBroadcaster) DeliverToDevice(deviceToken string, notification domain.InAppNotification) int {
	args := m.Called(deviceToken, notification)
	return args.Int(0)
}
