// Package helicone provides a tunerkit.Sink that forwards invocation
// records to Helicone's trace collector.
//
// Usage:
//
//	sink := helicone.NewSink(os.Getenv("HELICONE_API_KEY"))
//	client := tunerkit.NewClient(target, tunerkit.WithSink(sink))
package helicone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	tunerkit "github.com/tunerkit/tunerkit-go"
)

// DefaultBaseURL is Helicone's hosted trace collector.
const DefaultBaseURL = "https://api.hconeai.com"

const tracePath = "/trace/log"

// tracePayload is Helicone's provider-neutral trace envelope.
type tracePayload struct {
	ProviderRequest  providerRequest  `json:"providerRequest"`
	ProviderResponse providerResponse `json:"providerResponse"`
	Timing           timing           `json:"timing"`
}

type providerRequest struct {
	URL  string            `json:"url"`
	JSON tunerkit.Params   `json:"json"`
	Meta map[string]string `json:"meta"`
}

type providerResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	JSON    any               `json:"json"`
}

type timing struct {
	StartTime timePoint `json:"startTime"`
	EndTime   timePoint `json:"endTime"`
}

type timePoint struct {
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

// Option configures a Sink.
type Option func(*Sink)

// WithBaseURL overrides the Helicone base URL. Useful for testing with
// httptest.
func WithBaseURL(url string) Option {
	return func(s *Sink) {
		s.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for trace delivery.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Sink) {
		s.httpClient = hc
	}
}

// Sink implements tunerkit.Sink against Helicone's trace endpoint.
type Sink struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSink creates a Helicone sink authenticating with apiKey.
func NewSink(apiKey string, opts ...Option) *Sink {
	s := &Sink{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log maps the record into Helicone's envelope and posts it. A record with
// nil Params is a caller programming error and is reported as a returned
// error without sending anything.
func (s *Sink) Log(ctx context.Context, record tunerkit.InvocationRecord) error {
	if record.Params == nil {
		return errors.New("helicone: record has no params")
	}

	meta := make(map[string]string, len(record.Headers)+len(record.Meta))
	for k, v := range record.Meta {
		meta[k] = v
	}
	for k, v := range record.Headers {
		meta[k] = v
	}

	payload := tracePayload{
		ProviderRequest: providerRequest{
			URL:  record.Path,
			JSON: record.Params,
			Meta: meta,
		},
		ProviderResponse: providerResponse{
			Status:  http.StatusOK,
			Headers: map[string]string{},
			JSON:    record.Response,
		},
		Timing: timing{
			StartTime: timePoint{
				Seconds:      record.Timing.Start.Seconds,
				Milliseconds: record.Timing.Start.Milliseconds,
			},
			EndTime: timePoint{
				Seconds:      record.Timing.End.Seconds,
				Milliseconds: record.Timing.End.Milliseconds,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("helicone: encoding trace: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+tracePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("helicone: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("helicone: posting trace: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("helicone: trace endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var _ tunerkit.Sink = (*Sink)(nil)
