package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/philipp01105/envlog/core"
)

// NoContext is the detail of alerts raised without fields.
const NoContext = "No additional context"

// Alert is one critical notification.
type Alert struct {
	Title  string
	Detail string
}

// Build creates the alert for a critical record.
func Build(name, msg string, fields []core.Field) Alert {
	return Alert{
		Title:  fmt.Sprintf("[%s] CRITICAL: %s", name, msg),
		Detail: Detail(fields),
	}
}

// Detail renders fields as two-space indented JSON, or NoContext when
// there are none.
func Detail(fields []core.Field) string {
	if len(fields) == 0 {
		return NoContext
	}
	data, err := json.MarshalIndent(core.FieldsMap(fields), "", "  ")
	if err != nil {
		// Values json cannot represent fall back to their text form
		m := make(map[string]string, len(fields))
		for _, f := range fields {
			m[f.Key] = f.StringValue()
		}
		data, _ = json.MarshalIndent(m, "", "  ")
	}
	return string(data)
}

// Notifier delivers alerts to an external channel.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// Payload is the incoming-webhook message body.
type Payload struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a coloured block below the message text.
type Attachment struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// NewPayload wraps an alert in the webhook message shape.
func NewPayload(a Alert) Payload {
	return Payload{
		Text:        a.Title,
		Attachments: []Attachment{{Text: a.Detail, Color: "danger"}},
	}
}

// Webhook posts alerts to a Slack-compatible incoming webhook.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook returns a Webhook posting to url. A nil client means
// http.DefaultClient.
func NewWebhook(url string, client *http.Client) (*Webhook, error) {
	if url == "" {
		return nil, errors.New("alert: webhook url is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{url: url, client: client}, nil
}

// Notify posts the alert. Any non-2xx response is an error.
func (w *Webhook) Notify(ctx context.Context, a Alert) error {
	body, err := json.Marshal(NewPayload(a))
	if err != nil {
		return fmt.Errorf("alert: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("alert: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("alert: post webhook: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert: webhook returned %s", resp.Status)
	}
	return nil
}
