package observer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"contactd/internal/directory"
	"contactd/pkg/types"
)

// Webhook pushes events to a remote endpoint as JSON over POST. The hub's
// per-delivery timeout bounds the whole request through the context.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook builds an observer posting to url. client may be nil for the
// default client; the delivery context still enforces the hub timeout.
func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{url: url, client: client}
}

// URL returns the target endpoint.
func (w *Webhook) URL() string { return w.url }

func (w *Webhook) OnEvent(ctx context.Context, e directory.Event) error {
	payload := types.EventPayload{Kind: e.Kind, Contacts: e.Contacts, Fields: e.Fields}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}
	return nil
}
