package push

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type sentRequest struct {
	Message struct {
		Token   string `json:"token"`
		Webpush struct {
			Notification map[string]string `json:"notification"`
		} `json:"webpush"`
		Data map[string]string `json:"data"`
	} `json:"message"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *FCMProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewFCMProvider(context.Background(), FCMConfig{ProjectID: "test-project"}, discardLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return provider
}

func TestFCMProvider_Send(t *testing.T) {
	var got sentRequest
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/projects/test-project/messages:send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"projects/test-project/messages/0:1700000000"}`))
	})

	receipt, err := provider.Send(context.Background(), domain.NewPushMessage("device-abc", "Hello", "World"))

	require.NoError(t, err)
	assert.Equal(t, "projects/test-project/messages/0:1700000000", receipt.MessageID)
	assert.False(t, receipt.SentAt.IsZero())

	assert.Equal(t, "device-abc", got.Message.Token)
	assert.Equal(t, map[string]string{"title": "Hello", "body": "World"}, got.Message.Webpush.Notification)
	assert.Equal(t, map[string]string{"title": "Hello", "body": "World"}, got.Message.Data)
}

func TestFCMProvider_Rejected(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"The registration token is not a valid FCM registration token","status":"INVALID_ARGUMENT"}}`))
	})

	receipt, err := provider.Send(context.Background(), domain.NewPushMessage("", "", ""))

	assert.Nil(t, receipt)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderRejected)
	assert.Equal(t, "The registration token is not a valid FCM registration token", apperrors.ProviderMessage(err))

	var perr *apperrors.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
}

func TestFCMProvider_Unavailable(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"The service is currently unavailable.","status":"UNAVAILABLE"}}`))
	})

	_, err := provider.Send(context.Background(), domain.NewPushMessage("device-abc", "t", "b"))

	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Equal(t, "The service is currently unavailable.", apperrors.ProviderMessage(err))
}

func TestNewFCMProvider_RequiresProject(t *testing.T) {
	_, err := NewFCMProvider(context.Background(), FCMConfig{}, discardLogger(), option.WithoutAuthentication())
	assert.Error(t, err)
}

func TestCredentials_InvalidJSON(t *testing.T) {
	_, err := Credentials(context.Background(), FCMConfig{CredentialsJSON: "{not json"})
	assert.Error(t, err)
}

func TestCredentials_MissingFile(t *testing.T) {
	_, err := Credentials(context.Background(), FCMConfig{CredentialsFile: "/nonexistent/service-account.json"})
	assert.Error(t, err)
}
