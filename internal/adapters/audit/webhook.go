package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-vault/internal/platform/httpclient"
	"health-vault/internal/ports/audit"
)

// WebhookSink reenvía cada entrada a un colector HTTP externo.
type WebhookSink struct {
	client *httpclient.Client
	url    string
	apiKey string
}

type webhookPayload struct {
	UserID   string         `json:"user_id"`
	Action   string         `json:"action"`
	RecordID string         `json:"record_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	At       time.Time      `json:"at"`
}

func NewWebhookSink(c *httpclient.Client, url, apiKey string) (*WebhookSink, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("audit webhook: url required")
	}
	if c == nil {
		c = httpclient.New(0)
	}
	return &WebhookSink{client: c, url: url, apiKey: strings.TrimSpace(apiKey)}, nil
}

func (s *WebhookSink) Log(ctx context.Context, e audit.Entry) error {
	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{"X-API-Key": s.apiKey}
	}
	return s.client.PostJSON(ctx, s.url, headers, webhookPayload{
		UserID:   e.UserID,
		Action:   string(e.Action),
		RecordID: e.RecordID,
		Metadata: e.Metadata,
		At:       e.At.UTC(),
	})
}
