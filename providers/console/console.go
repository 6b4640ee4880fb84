// Package console provides a tunerkit.Sink that writes one color-coded line
// per invocation record, for local development.
//
// Usage:
//
//	client := tunerkit.NewClient(target,
//	    tunerkit.WithSink(console.NewSink(os.Stderr)),
//	)
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	tunerkit "github.com/tunerkit/tunerkit-go"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

const maxBodyLen = 200

// Option configures a Sink.
type Option func(*Sink)

// WithColor toggles ANSI color output. Enabled by default.
func WithColor(on bool) Option {
	return func(s *Sink) {
		s.color = on
	}
}

// Sink writes human-readable record lines to a writer.
type Sink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewSink creates a console sink writing to w.
func NewSink(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w, color: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log writes one line for the record. Session boundary events are rendered
// with their path marker instead of a response.
func (s *Sink) Log(ctx context.Context, record tunerkit.InvocationRecord) error {
	tag := record.Path
	if marker := record.Headers[tunerkit.HeaderSessionPath]; marker != "" {
		tag = fmt.Sprintf("%s %s", record.Path, marker)
	}

	elapsed := record.Timing.End.Time().Sub(record.Timing.Start.Time())

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s %s %s %s\n",
		s.paint(colorCyan, "["+tag+"]"),
		truncate(render(record.Params)),
		s.paint(colorGreen, truncate(render(record.Response))),
		s.paint(colorGray, fmt.Sprintf("(%dms)", elapsed.Milliseconds())),
	)
	return err
}

func (s *Sink) paint(color, text string) string {
	if !s.color {
		return text
	}
	return color + text + colorReset
}

func render(v any) string {
	if v == nil {
		return "-"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func truncate(s string) string {
	if len(s) > maxBodyLen {
		return s[:maxBodyLen] + "..."
	}
	return s
}

var _ tunerkit.Sink = (*Sink)(nil)
