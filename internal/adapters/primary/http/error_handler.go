package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
)

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate {message} response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	// AppError carries its own user-facing message and status.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, err)
		WriteMessage(w, appErr.StatusCode, appErr.Message)
		return
	}

	statusCode, message := h.mapDomainError(err)
	h.logError(r, statusCode, err)
	WriteMessage(w, statusCode, message)
}

// mapDomainError converts domain errors to HTTP status codes and messages
func (h *ErrorHandler) mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests. Please try again later."
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads this body.
		return 499, "Request canceled"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error) {
	logAttrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	// Log at different levels based on status code
	ctx := r.Context()
	switch {
	case statusCode >= 500:
		h.logger.ErrorContext(ctx, "server error", logAttrs...)
	case statusCode >= 400:
		h.logger.WarnContext(ctx, "client error", logAttrs...)
	default:
		h.logger.InfoContext(ctx, "request error", logAttrs...)
	}
}
