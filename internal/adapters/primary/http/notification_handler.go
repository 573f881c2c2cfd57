package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/support-analytics/internal/adapters/primary/validation"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// NotifyRequest is the body of POST /notify.
type NotifyRequest struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotificationHandler handles push notification requests.
type NotificationHandler struct {
	notificationService ports.NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService ports.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.With("handler", "notifications"),
	}
}

// RegisterRoutes registers the /notify route.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/notify", h.HandleNotify)
}

// HandleNotify handles POST /notify. Fields are not validated here; the
// provider rejects incomplete messages and its reason is returned as is.
func (h *NotificationHandler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeLenient[NotifyRequest](r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "malformed notify body, sending empty fields", "error", err)
	}

	_, err = h.notificationService.Send(r.Context(), ports.SendNotificationParams{
		Token: req.Token,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to send notification", "error", err)
		WriteJSON(w, http.StatusInternalServerError, NotifyResponse{
			Success: false,
			Error:   apperrors.ProviderMessage(err),
		})
		return
	}

	WriteJSON(w, http.StatusOK, NotifyResponse{
		Success: true,
		Message: "Notification sent successfully",
	})
}
