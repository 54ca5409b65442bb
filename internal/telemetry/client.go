// Package telemetry sends visit events to the analytics collector. The call
// is fire-and-forget: the page never blocks on it, failures are logged for
// diagnostics and otherwise ignored, and nothing is retried.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// VisitEvent is the payload of POST /api/track. Timestamp is the only field
// the collector requires.
type VisitEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	Language  string    `json:"language,omitempty"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
}

// Client posts visit events to the collector endpoint. It is the sole
// network egress of the widget core.
type Client struct {
	endpoint string
	http     *http.Client
	log      *slog.Logger
	timeout  time.Duration
}

// New builds a client for the given collector endpoint, e.g.
// "http://localhost:8080/api/track". An empty endpoint yields a client
// whose NotifyVisit does nothing.
func New(endpoint string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 5 * time.Second},
		log:      log.With("component", "telemetry"),
		timeout:  5 * time.Second,
	}
}

// NotifyVisit dispatches ev in a background one-shot. The caller's context
// is not used for the send: page teardown may abandon the request, but it
// must never cancel-and-error back into the caller. Any failure is only
// observable in the diagnostic log.
func (c *Client) NotifyVisit(ev VisitEvent) {
	if c.endpoint == "" {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.send(ctx, ev); err != nil {
			c.log.Warn("visit tracking failed", "error", err)
		}
	}()
}

func (c *Client) send(ctx context.Context, ev VisitEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode visit event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ev.UserAgent != "" {
		req.Header.Set("User-Agent", ev.UserAgent)
	}
	// Carry the visitor's address; without this the collector would record
	// the server talking to itself.
	if ev.RemoteIP != "" {
		req.Header.Set("X-Forwarded-For", ev.RemoteIP)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post visit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector responded %d", resp.StatusCode)
	}

	// The body is ignored beyond logging.
	var ack struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil {
		c.log.Debug("visit tracked", "status", ack.Status)
	}
	return nil
}
