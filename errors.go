package tunerkit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMethodNotFound indicates a call path did not resolve to a callable
// member on the wrapped client.
var ErrMethodNotFound = errors.New("method not found")

// ErrSimulationUnavailable indicates the simulation endpoint was unreachable
// or returned a non-success status. The real call is not attempted.
var ErrSimulationUnavailable = errors.New("simulation unavailable")

// ErrStreamDecode indicates accumulated streamed chunks failed to parse as
// structured data.
var ErrStreamDecode = errors.New("stream decode failed")

// MethodNotFoundError reports which path segment failed to resolve.
type MethodNotFoundError struct {
	Path    []string
	Segment string
	Reason  string
}

func (e *MethodNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("method not found: %s at %q: %s", strings.Join(e.Path, "."), e.Segment, e.Reason)
	}
	return fmt.Sprintf("method not found: %s at %q", strings.Join(e.Path, "."), e.Segment)
}

func (e *MethodNotFoundError) Unwrap() error {
	return ErrMethodNotFound
}

// SimulationError wraps a failed simulation decision request.
type SimulationError struct {
	StatusCode int
	Err        error
}

func (e *SimulationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("simulation endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("simulation request failed: %v", e.Err)
}

func (e *SimulationError) Unwrap() error {
	return ErrSimulationUnavailable
}

// StreamDecodeError wraps a failed decode of accumulated stream chunks.
// Raw holds the concatenated text that failed to parse.
type StreamDecodeError struct {
	Raw string
	Err error
}

func (e *StreamDecodeError) Error() string {
	return fmt.Sprintf("decoding accumulated stream: %v", e.Err)
}

func (e *StreamDecodeError) Unwrap() error {
	return ErrStreamDecode
}
