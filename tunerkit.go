// Package tunerkit is a transparent call-interception layer for arbitrary,
// unmodified client objects. It wraps a client of unknown shape so that
// method calls at any nesting depth can be observed, correlated into
// sessions, optionally redirected through a remote simulation decision
// point, and forwarded to pluggable logging sinks — without touching the
// wrapped client's code.
//
// Usage:
//
//	client := tunerkit.NewClient(openai,
//	    tunerkit.WithAPIKey(os.Getenv("TUNERKIT_API_KEY")),
//	    tunerkit.WithSink(console.NewSink(os.Stderr)),
//	)
//
//	headers := client.StartSession(tunerkit.Params{"topic": "demo"}, datasetID)
//	resp, err := client.Call(ctx, "chat.completions.create", params)
//	client.EndSession(tunerkit.Params{"answer": resp}, headers)
//	client.Flush(ctx)
//
// Observability is best-effort: delivery failures are reported on the
// diagnostic logger and never surface to the caller or delay the returned
// value.
package tunerkit

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production Tunerkit API endpoint.
const DefaultBaseURL = "https://api.tunerkit.dev"

// Client intercepts calls made through it to the wrapped target object.
// All proxied call sites created from one Client share its session context.
type Client struct {
	target     any
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	sinks      []Sink
	legacy     bool

	mu      sync.RWMutex
	session SessionContext

	pending sync.WaitGroup
}

// NewClient wraps target in a new interception client. The target is any
// object exposing callable members at arbitrary paths; pass a pointer if its
// methods have pointer receivers.
func NewClient(target any, opts ...ClientOption) *Client {
	c := &Client{
		target:     target,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv wraps target using configuration loaded from TUNERKIT_*
// environment variables. Options are applied after the environment so they
// take precedence.
func NewClientFromEnv(target any, opts ...ClientOption) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	envOpts := []ClientOption{WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		envOpts = append(envOpts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.LegacyPaths {
		envOpts = append(envOpts, WithLegacyPaths())
	}
	return NewClient(target, append(envOpts, opts...)...), nil
}

// Flush blocks until all pending fire-and-forget log deliveries have
// completed, or until ctx is done. Call before process exit if delivery
// matters.
func (c *Client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
