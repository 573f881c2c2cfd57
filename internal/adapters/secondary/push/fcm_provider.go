package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/lorrc/support-analytics/internal/core/domain"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

const missingTargetDescription = "Recipient of the message is not set."

// FCMConfig identifies the Firebase project and its service account.
// With neither CredentialsFile nor CredentialsJSON set, application
// default credentials are used.
type FCMConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

// FCMProvider sends messages through the Firebase Cloud Messaging HTTP v1 API.
type FCMProvider struct {
	svc       *fcm.Service
	projectID string
	logger    *slog.Logger
	now       func() time.Time
}

var _ ports.PushProvider = (*FCMProvider)(nil)

// Credentials resolves the service account credentials for cfg.
func Credentials(ctx context.Context, cfg FCMConfig) (*google.Credentials, error) {
	raw := []byte(cfg.CredentialsJSON)
	if len(raw) == 0 && cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read firebase credentials: %w", err)
		}
		raw = data
	}

	if len(raw) == 0 {
		creds, err := google.FindDefaultCredentials(ctx, fcm.FirebaseMessagingScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return creds, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, fcm.FirebaseMessagingScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse firebase credentials: %w", err)
	}
	return creds, nil
}

// NewFCMProvider creates the FCM client. The project falls back to the one
// named in the credentials when cfg.ProjectID is empty.
func NewFCMProvider(ctx context.Context, cfg FCMConfig, logger *slog.Logger, opts ...option.ClientOption) (*FCMProvider, error) {
	projectID := cfg.ProjectID

	if len(opts) == 0 {
		creds, err := Credentials(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if projectID == "" {
			projectID = creds.ProjectID
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	if projectID == "" {
		return nil, errors.New("firebase project id is required")
	}

	svc, err := fcm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create fcm client: %w", err)
	}

	return &FCMProvider{
		svc:       svc,
		projectID: projectID,
		logger:    logger.With("component", "fcm_provider", "project_id", projectID),
		now:       time.Now,
	}, nil
}

// Send delivers msg synchronously. Provider failures are returned as
// *apperrors.ProviderError carrying the provider's description.
func (p *FCMProvider) Send(ctx context.Context, msg domain.PushMessage) (*domain.PushReceipt, error) {
	notification, err := json.Marshal(msg.WebPush)
	if err != nil {
		return nil, fmt.Errorf("failed to encode webpush notification: %w", err)
	}

	req := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token: msg.Token,
			Webpush: &fcm.WebpushConfig{
				Notification: googleapi.RawMessage(notification),
			},
			Data: msg.Data,
		},
	}

	sent, err := p.svc.Projects.Messages.Send("projects/"+p.projectID, req).Context(ctx).Do()
	if err != nil {
		return nil, translateError(err)
	}

	p.logger.DebugContext(ctx, "push notification sent", "message_id", sent.Name)

	return &domain.PushReceipt{
		MessageID: sent.Name,
		SentAt:    p.now(),
	}, nil
}

func translateError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		description := gerr.Message
		if description == "" {
			description = gerr.Error()
		}
		sentinel := apperrors.ErrProviderUnavailable
		if gerr.Code >= 400 && gerr.Code < 500 && gerr.Code != http.StatusTooManyRequests {
			sentinel = apperrors.ErrProviderRejected
		}
		return apperrors.NewProviderError(fmt.Errorf("%w: %w", sentinel, err), description, gerr.Code)
	}

	return apperrors.NewProviderError(fmt.Errorf("%w: %w", apperrors.ErrProviderUnavailable, err), err.Error(), http.StatusBadGateway)
}
