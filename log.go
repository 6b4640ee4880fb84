package tunerkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const (
	logPath       = "/api/logs"
	legacyLogPath = "/logs"
)

// logPayload is the primary log endpoint's body shape.
type logPayload struct {
	Request  logRequest   `json:"request"`
	Response logResponse  `json:"response"`
	Timing   TimingRecord `json:"timing"`
}

type logRequest struct {
	URL  string            `json:"url"`
	JSON Params            `json:"json"`
	Meta map[string]string `json:"meta,omitempty"`
}

type logResponse struct {
	Status int `json:"status"`
	JSON   any `json:"json"`
}

// dispatch delivers a finished record to the primary log endpoint and every
// attached sink on a background goroutine. The caller's return value is
// never delayed or altered; failures land on the diagnostic logger and are
// otherwise swallowed. Dispatches are tracked so Flush can drain them.
func (c *Client) dispatch(record InvocationRecord) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				c.logger.Warn("log dispatch panicked", zap.Any("panic", r))
			}
		}()

		// Deliberately detached from the call's context: a proxied call
		// returning must not cancel its own log delivery.
		ctx := context.Background()

		if err := c.postLog(ctx, record); err != nil {
			c.logger.Warn("primary log delivery failed",
				zap.String("path", record.Path),
				zap.Error(err))
		}
		for _, sink := range c.sinks {
			if err := sink.Log(ctx, record); err != nil {
				c.logger.Warn("sink delivery failed",
					zap.String("path", record.Path),
					zap.Error(err))
			}
		}
	}()
}

func (c *Client) postLog(ctx context.Context, record InvocationRecord) error {
	payload := logPayload{
		Request: logRequest{
			URL:  record.Path,
			JSON: record.Params,
			Meta: record.Meta,
		},
		Response: logResponse{
			Status: http.StatusOK,
			JSON:   record.Response,
		},
		Timing: record.Timing,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding log payload: %w", err)
	}

	path := logPath
	if c.legacy {
		path = legacyLogPath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range record.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting log: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("log endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
