package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/domain/alert"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
)

// Notifier delivers fired alerts to an external channel.
type Notifier interface {
	NotifyAlert(ctx context.Context, a *alert.Alert) error
}

// SlackNotifier posts fired alerts to a Slack incoming webhook. A notifier
// with an empty webhook URL is a no-op.
type SlackNotifier struct {
	webhookURL string
	channel    string
	logger     *logger.Logger
	httpClient *http.Client
}

// NewSlackNotifier creates a Slack webhook notifier
func NewSlackNotifier(webhookURL, channel string, log *logger.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		logger:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NotifyAlert posts the alert to the configured webhook. Delivery failures
// are returned for the caller to log; alerting never blocks on Slack.
func (s *SlackNotifier) NotifyAlert(ctx context.Context, a *alert.Alert) error {
	if s.webhookURL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"text": fmt.Sprintf(":rotating_light: *%s*\n%s", a.RuleName, a.Details),
		"attachments": []map[string]interface{}{
			{
				"color": "#e01e5a",
				"fields": []map[string]interface{}{
					{"title": "Rule type", "value": string(a.RuleType), "short": true},
					{"title": "Entity", "value": a.EntityKey, "short": true},
				},
			},
		},
	}
	if s.channel != "" {
		payload["channel"] = s.channel
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack webhook returned %d: %s", resp.StatusCode, msg)
	}

	s.logger.With("alert_id", a.ID).Debug("Alert posted to Slack")
	return nil
}
