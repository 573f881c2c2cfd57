package ctl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/support-analytics/internal/auth"
	"github.com/lorrc/support-analytics/internal/config"
	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/mocks"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

func newTestApp(cfg *config.Config, provider ports.PushProvider) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), &out).
		WithProviderFactory(func(context.Context) (ports.PushProvider, error) {
			return provider, nil
		})
	return app, &out
}

func TestTokenCommand(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}}
	userID := uuid.New()

	t.Run("mints a token for the role", func(t *testing.T) {
		app, out := newTestApp(cfg, nil)

		err := app.Command().Run(context.Background(),
			[]string{"analyticsctl", "token", "--user-id", userID.String(), "--role", "agent"})
		require.NoError(t, err)

		claims, err := auth.NewTokenManager("test-secret", time.Hour).ValidateToken(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, domain.RoleAgent, claims.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		app, _ := newTestApp(cfg, nil)
		err := app.Command().Run(context.Background(),
			[]string{"analyticsctl", "token", "--user-id", userID.String(), "--role", "root"})
		assert.ErrorContains(t, err, "unknown role")
	})

	t.Run("rejects bad user id", func(t *testing.T) {
		app, _ := newTestApp(cfg, nil)
		err := app.Command().Run(context.Background(),
			[]string{"analyticsctl", "token", "--user-id", "42"})
		assert.ErrorContains(t, err, "invalid user id")
	})

	t.Run("requires a secret", func(t *testing.T) {
		app, _ := newTestApp(&config.Config{}, nil)
		err := app.Command().Run(context.Background(),
			[]string{"analyticsctl", "token", "--user-id", userID.String()})
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

func TestNotifyCommand(t *testing.T) {
	t.Run("sends through the provider", func(t *testing.T) {
		provider := mocks.NewMockPushProvider()
		provider.On("Send", mock.Anything, domain.NewPushMessage("device-1", "Hello", "World")).
			Return(&domain.PushReceipt{MessageID: "projects/p/messages/7", SentAt: time.Now()}, nil)

		app, out := newTestApp(&config.Config{}, provider)
		err := app.Command().Run(context.Background(),
			[]string{"analyticsctl", "notify", "--token", "device-1", "--title", "Hello", "--body", "World"})

		require.NoError(t, err)
		assert.Equal(t, "sent projects/p/messages/7\n", out.String())
		provider.AssertExpectations(t)
	})

	t.Run("returns provider errors", func(t *testing.T) {
		provider := mocks.NewMockPushProvider()
		provider.On("Send", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewProviderError(apperrors.ErrProviderRejected, "Recipient of the message is not set.", 400))

		app, _ := newTestApp(&config.Config{}, provider)
		err := app.Command().Run(context.Background(), []string{"analyticsctl", "notify", "--title", "Hello"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrProviderRejected))
	})
}

func TestMigrateCommand_RequiresDatabaseURL(t *testing.T) {
	app, _ := newTestApp(&config.Config{}, nil)

	err := app.Command().Run(context.Background(), []string{"analyticsctl", "migrate", "up"})
	assert.ErrorContains(t, err, "DATABASE_URL")

	err = app.Command().Run(context.Background(), []string{"analyticsctl", "migrate", "down", "--steps", "0"})
	assert.ErrorContains(t, err, "steps must be at least 1")
}
