package tunerkit

import (
	"net/http"

	"go.uber.org/zap"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key sent as a bearer token on log and simulation
// requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL overrides the Tunerkit API base URL. Useful for testing with
// httptest.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for log and simulation requests.
// No timeouts are imposed by this layer; configure them on the client given
// here.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the diagnostic logger. Swallowed delivery failures and
// simulation decisions are reported here; the default is a no-op logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSink attaches a logging sink. Every finished invocation record is
// delivered to each attached sink in addition to the primary log endpoint.
func WithSink(s Sink) ClientOption {
	return func(c *Client) {
		c.sinks = append(c.sinks, s)
	}
}

// WithLegacyPaths switches log and simulation requests to the legacy
// endpoint paths (/logs and /v1/dev/completions).
func WithLegacyPaths() ClientOption {
	return func(c *Client) {
		c.legacy = true
	}
}

// callConfig holds per-call configuration.
type callConfig struct {
	headers Headers
	meta    map[string]string
	dev     bool
}

// CallOption configures a single proxied call or a WrapFunc wrapper.
type CallOption func(*callConfig)

// WithHeaders sets explicit correlation headers for this call. Explicit
// headers take precedence over session-derived headers for the fields they
// define; non-overlapping session fields still apply.
func WithHeaders(h Headers) CallOption {
	return func(cfg *callConfig) {
		cfg.headers = h
	}
}

// WithMeta attaches metadata to the invocation record for this call.
func WithMeta(meta map[string]string) CallOption {
	return func(cfg *callConfig) {
		cfg.meta = meta
	}
}

// WithDev forces the simulation gate for this call regardless of the active
// session type. For WrapFunc wrappers this is the only gate trigger.
func WithDev(on bool) CallOption {
	return func(cfg *callConfig) {
		cfg.dev = on
	}
}
