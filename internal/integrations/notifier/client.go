package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger is the logging interface the client depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client delivers events to the external webhook sink.
// Delivery is best-effort: Notify detaches from the request and a failed
// delivery is logged, never propagated to the caller.
type Client struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a webhook sink client.
func NewClient(url string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify posts the payload to the sink off the critical path.
// The spawned delivery uses its own context so it survives the end of the
// triggering request.
func (c *Client) Notify(ctx context.Context, event string, payload Payload) {
	payload.Event = event

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.send(sendCtx, payload); err != nil {
			c.log.Warn("Notify: dropped %s event for appointment id=%d: %v",
				event, payload.Appointment.ID, err)
			return
		}
		c.log.Info("Notify: delivered %s event for appointment id=%d",
			event, payload.Appointment.ID)
	}()
}

// send performs one synchronous delivery attempt.
func (c *Client) send(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: sink responded %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}
