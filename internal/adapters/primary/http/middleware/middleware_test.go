package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-analytics/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["message"]
}

func TestJWTMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tm.GenerateToken(userID, "admin")
	require.NoError(t, err)

	var seen *auth.Claims
	handler := JWTMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, userID, seen.UserID)
			} else {
				assert.Nil(t, seen)
				assert.NotEmpty(t, decodeMessage(t, rec))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	handler := JWTMiddleware(tm)(RequireRole("admin")(http.HandlerFunc(okHandler)))

	adminToken, err := tm.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)
	agentToken, err := tm.GenerateToken(uuid.New(), "agent")
	require.NoError(t, err)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("agent is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+agentToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Access denied", decodeMessage(t, rec))
	})

	t.Run("no claims in context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger_RedactsToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?token=secret-jwt&device=d1", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), "REDACTED")
	assert.NotContains(t, buf.String(), "secret-jwt")
}

func TestRecoveryLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RecoveryLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeMessage(t, rec))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	handler := rl.Middleware(http.HandlerFunc(okHandler))

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1236"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, TTL: time.Minute})
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.Allow("10.0.0.2")
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req, true))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", clientIP(req, true))
	assert.Equal(t, "192.0.2.1", clientIP(req, false))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req, true))
	assert.Equal(t, "192.0.2.1", clientIP(req, false))
}

func TestRateLimiter_IgnoresForwardedHeadersByDefault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	call := func(rl *RateLimiter, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		rl.Middleware(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("rotating the header does not reset the limit", func(t *testing.T) {
		rl := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
		assert.Equal(t, http.StatusOK, call(rl, "203.0.113.1"))
		assert.Equal(t, http.StatusTooManyRequests, call(rl, "203.0.113.2"))
	})

	t.Run("trusted proxy keys on the forwarded client", func(t *testing.T) {
		rl := NewRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1, TrustProxy: true})
		assert.Equal(t, http.StatusOK, call(rl, "203.0.113.1"))
		assert.Equal(t, http.StatusOK, call(rl, "203.0.113.2"))
		assert.Equal(t, http.StatusTooManyRequests, call(rl, "203.0.113.1"))
	})
}
