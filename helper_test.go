package tunerkit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// capturedRequest records one request the fake backend received.
type capturedRequest struct {
	path    string
	headers http.Header
	body    map[string]any
}

// backend is a fake Tunerkit API capturing log and simulation requests.
type backend struct {
	mu   sync.Mutex
	logs []capturedRequest
	sims []capturedRequest

	simResponse string // body returned from the simulation endpoint
	simStatus   int
	logStatus   int

	server *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		simResponse: `{"run_model": true}`,
		simStatus:   http.StatusOK,
		logStatus:   http.StatusOK,
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	json.Unmarshal(raw, &body)

	req := capturedRequest{path: r.URL.Path, headers: r.Header.Clone(), body: body}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.URL.Path {
	case "/api/logs", "/logs":
		b.logs = append(b.logs, req)
		w.WriteHeader(b.logStatus)
	case "/api/completions", "/v1/dev/completions":
		b.sims = append(b.sims, req)
		w.WriteHeader(b.simStatus)
		if b.simStatus >= 200 && b.simStatus < 300 {
			w.Write([]byte(b.simResponse))
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) setSimulation(status int, response string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.simStatus = status
	b.simResponse = response
}

func (b *backend) logRequests() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]capturedRequest, len(b.logs))
	copy(out, b.logs)
	return out
}

func (b *backend) simRequests() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]capturedRequest, len(b.sims))
	copy(out, b.sims)
	return out
}

func newTestClient(t *testing.T, target any, b *backend, opts ...ClientOption) *Client {
	t.Helper()
	base := []ClientOption{WithBaseURL(b.server.URL), WithAPIKey("test-key")}
	return NewClient(target, append(base, opts...)...)
}

func flush(t *testing.T, c *Client) {
	t.Helper()
	if err := c.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}
