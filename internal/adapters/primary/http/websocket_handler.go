package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	wsAdapter "github.com/lorrc/support-analytics/internal/adapters/primary/websocket"
	"github.com/lorrc/support-analytics/internal/auth"
	"github.com/lorrc/support-analytics/internal/config"
)

// WebSocketHandler upgrades dashboard connections to the in-app
// notification channel.
type WebSocketHandler struct {
	hub      *wsAdapter.Hub
	tm       *auth.TokenManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *wsAdapter.Hub,
	tm *auth.TokenManager,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:    hub,
		tm:     tm,
		logger: logger.With("handler", "websocket"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg.WebSocket.AllowedOrigins, cfg.IsDevelopment()),
	}

	return handler
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *WebSocketHandler) makeOriginChecker(allowedOrigins []string, development bool) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// In development mode, allow all origins (but log a warning)
		if development {
			if origin != "" {
				h.logger.Warn("allowing websocket connection in development mode",
					"origin", origin,
					"remote_addr", r.RemoteAddr,
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse websocket origin",
				"origin", origin,
				"error", err,
			)
			return false
		}

		if originAllowed(parsedOrigin.Host, allowedOrigins) {
			return true
		}

		h.logger.Warn("websocket connection rejected due to origin",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
			"allowed_origins", allowedOrigins,
		)
		return false
	}
}

// originAllowed matches host against the allow list. Entries like
// "*.example.com" match any subdomain and the bare domain.
func originAllowed(host string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if strings.HasPrefix(allowed, "*.") {
			if strings.HasSuffix(host, allowed[1:]) || host == allowed[2:] {
				return true
			}
		} else if host == allowed {
			return true
		}
	}
	return false
}

// ServeHTTP handles GET /notifications/ws?token=<jwt>&device=<device token>.
// Browsers cannot set headers on websocket requests, so the JWT travels in
// the query string.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		h.logger.WarnContext(ctx, "websocket connection rejected: missing token",
			"remote_addr", r.RemoteAddr,
		)
		WriteMessage(w, http.StatusUnauthorized, "Missing authentication token")
		return
	}

	claims, err := h.tm.ValidateToken(tokenString)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket connection rejected: invalid token",
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		WriteMessage(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	deviceToken := r.URL.Query().Get("device")
	if deviceToken == "" {
		WriteMessage(w, http.StatusBadRequest, "Missing device token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		h.logger.ErrorContext(ctx, "failed to upgrade websocket connection",
			"user_id", claims.UserID,
			"error", err,
		)
		return
	}

	client := wsAdapter.NewClient(h.hub, conn, claims.UserID, deviceToken, h.logger)
	if !h.hub.Add(client) {
		h.logger.WarnContext(ctx, "websocket hub stopped, closing connection", "user_id", claims.UserID)
		_ = conn.Close()
		return
	}

	h.logger.InfoContext(ctx, "websocket connection established",
		"user_id", claims.UserID,
		"remote_addr", r.RemoteAddr,
	)

	go client.WritePump()
	go client.ReadPump()
}
