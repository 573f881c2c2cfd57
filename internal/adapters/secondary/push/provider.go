package push

import (
	"context"
	"log/slog"

	"github.com/lorrc/support-analytics/internal/core/ports"
)

// NewProvider returns the FCM provider when a Firebase project is
// configured and the log-only provider otherwise.
func NewProvider(ctx context.Context, cfg FCMConfig, logger *slog.Logger) (ports.PushProvider, error) {
	if cfg.ProjectID == "" {
		logger.Warn("firebase is not configured, push notifications will only be logged")
		return NewLogProvider(logger), nil
	}

	provider, err := NewFCMProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
