package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// AnalyticsHandler serves the admin dashboard endpoints.
type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(
	analyticsService ports.AnalyticsService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "analytics"),
	}
}

// RegisterRoutes registers the analytics routes. Callers mount it behind
// authentication and the admin role check.
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/metrics", h.HandleMetrics)
	r.Get("/automation-rate", h.HandleAutomationRate)
	r.Get("/escalation-rate", h.HandleEscalationRate)
	r.Get("/frt", h.HandleFirstResponseTrend)
	r.Get("/resolution-time", h.HandleResolutionTime)
	r.Get("/agents", h.HandleAgents)
}

// HandleMetrics handles GET /metrics.
func (h *AnalyticsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.GetMetrics(r.Context(), rangeSelector(r))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "Metrics API error"))
		return
	}

	WriteJSON(w, http.StatusOK, presentMetrics(summary))
}

// HandleAutomationRate handles GET /automation-rate.
func (h *AnalyticsHandler) HandleAutomationRate(w http.ResponseWriter, r *http.Request) {
	split, err := h.analyticsService.GetAutomationRate(r.Context(), rangeSelector(r))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "Automation rate error"))
		return
	}

	WriteJSON(w, http.StatusOK, presentAutomationRate(split))
}

// HandleEscalationRate handles GET /escalation-rate.
func (h *AnalyticsHandler) HandleEscalationRate(w http.ResponseWriter, r *http.Request) {
	split, err := h.analyticsService.GetEscalationRate(r.Context(), rangeSelector(r))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "Escalation rate error"))
		return
	}

	WriteJSON(w, http.StatusOK, presentEscalationRate(split))
}

// HandleFirstResponseTrend handles GET /frt.
func (h *AnalyticsHandler) HandleFirstResponseTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.analyticsService.GetFirstResponseTrend(r.Context(), rangeSelector(r))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "FRT error"))
		return
	}

	if points == nil {
		points = []domain.FRTPoint{}
	}
	WriteJSON(w, http.StatusOK, points)
}

// HandleResolutionTime handles GET /resolution-time.
func (h *AnalyticsHandler) HandleResolutionTime(w http.ResponseWriter, r *http.Request) {
	rt, err := h.analyticsService.GetResolutionTime(r.Context(), rangeSelector(r))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "Resolution time error"))
		return
	}

	WriteJSON(w, http.StatusOK, presentResolutionTime(rt))
}

// HandleAgents handles GET /agents. The window is always the current week.
func (h *AnalyticsHandler) HandleAgents(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.GetAgents(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err, "Agents error"))
		return
	}

	WriteJSON(w, http.StatusOK, presentAgents(report))
}

// rangeSelector reads ?range= as sent; absent means weekly.
func rangeSelector(r *http.Request) domain.RangeSelector {
	return domain.ParseRangeSelector(r.URL.Query().Get("range"))
}
