/*
Copyright 2026 the Kiosk API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var ErrWebhookStatus = errors.New("webhook returned unexpected status")

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, notification Notification) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := []zap.Field{
		zap.Time("time", notification.Time),
	}

	if notification.Detail != "" {
		fields = append(fields, zap.String("detail", notification.Detail))
	}

	logger.Info("notification: "+notification.Message, fields...)

	return nil
}

// MultiNotifier fans a notification out to every notifier.  All notifiers are
// attempted and their errors joined.
type MultiNotifier []Notifier

func (n MultiNotifier) Notify(ctx context.Context, notification Notification) error {
	var errs []error

	for _, notifier := range n {
		if err := notifier.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WebhookNotifier posts notifications to a chat style incoming webhook that
// accepts a JSON object with a text field.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

type webhookPayload struct {
	Text string `json:"text"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, notification Notification) error {
	text := notification.Message
	if notification.Detail != "" {
		text += "\n" + notification.Detail
	}

	body, err := json.Marshal(&webhookPayload{Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrWebhookStatus, resp.StatusCode)
	}

	return nil
}
