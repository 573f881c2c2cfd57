package redis

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testCache *ResultCache

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	log.Println("Setting up Redis container...")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		log.Printf("could not start redis container: %v", err)
		return 1
	}
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Printf("could not terminate redis container: %v", err)
		}
	}()

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "redis")
	if err != nil {
		log.Printf("could not get redis endpoint: %v", err)
		return 1
	}

	testCache, err = NewResultCache(ctx, Config{URL: endpoint})
	if err != nil {
		log.Printf("could not connect to redis: %v", err)
		return 1
	}
	defer testCache.Close()

	return m.Run()
}

func TestResultCache_Miss(t *testing.T) {
	var dest domain.ShareSplit
	err := testCache.Get(context.Background(), "analytics:test:missing", &dest)
	assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
}

func TestResultCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	report := &domain.AgentsReport{
		Week: "current",
		Agents: []domain.AgentWorkload{
			{Name: "Alice", Department: "Payments", TotalTickets: 7, Avatar: "a.png"},
			{Name: "Bob", Department: "Games"},
		},
	}

	require.NoError(t, testCache.Set(ctx, "analytics:test:agents", report, time.Minute))

	var got *domain.AgentsReport
	require.NoError(t, testCache.Get(ctx, "analytics:test:agents", &got))
	assert.Equal(t, report, got)
}

func TestResultCache_Expiry(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, testCache.Set(ctx, "analytics:test:short", domain.ShareSplit{Flagged: 1}, 50*time.Millisecond))

	assert.Eventually(t, func() bool {
		var dest domain.ShareSplit
		return testCache.Get(ctx, "analytics:test:short", &dest) == apperrors.ErrCacheMiss
	}, 2*time.Second, 50*time.Millisecond)
}

func TestNewResultCache_BadURL(t *testing.T) {
	_, err := NewResultCache(context.Background(), Config{URL: "not-a-redis-url"})
	assert.Error(t, err)
}
