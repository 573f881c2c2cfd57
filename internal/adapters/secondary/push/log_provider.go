package push

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// LogProvider is a development push provider that logs messages instead of
// sending them. It rejects a message without a device token the same way
// the real provider does.
type LogProvider struct {
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.PushProvider = (*LogProvider)(nil)

// NewLogProvider creates a new log-only provider.
func NewLogProvider(logger *slog.Logger) *LogProvider {
	return &LogProvider{
		logger: logger.With("component", "push_log_provider"),
		now:    time.Now,
	}
}

func (p *LogProvider) Send(ctx context.Context, msg domain.PushMessage) (*domain.PushReceipt, error) {
	if msg.Token == "" {
		return nil, apperrors.NewProviderError(apperrors.ErrProviderRejected, missingTargetDescription, http.StatusBadRequest)
	}

	receipt := &domain.PushReceipt{
		MessageID: "log/" + uuid.NewString(),
		SentAt:    p.now(),
	}

	p.logger.InfoContext(ctx, "push notification logged",
		"message_id", receipt.MessageID,
		"token", redactToken(msg.Token),
		"title", msg.WebPush.Title,
		"body", msg.WebPush.Body,
	)

	return receipt, nil
}

// redactToken keeps only the tail of a device token for log correlation.
func redactToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-8:]
}
