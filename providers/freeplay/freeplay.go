// Package freeplay provides a tunerkit.Sink backed by Freeplay
// (https://freeplay.ai).
//
// Usage:
//
//	fp := freeplay.NewSink(fpclient.NewClient(apiKey, projectID))
//	client := tunerkit.NewClient(target, tunerkit.WithSink(fp))
//
// Records are forwarded as Freeplay completions: params and response are
// rendered as JSON text, and the session id correlation header becomes the
// Freeplay trace id.
package freeplay

import (
	"context"
	"encoding/json"

	fp "github.com/hev/freeplay-go"

	tunerkit "github.com/tunerkit/tunerkit-go"
)

// Sink implements tunerkit.Sink using the Freeplay API.
type Sink struct {
	client *fp.Client
}

// NewSink creates a Freeplay sink. The freeplay.Client should already be
// configured with API key, project ID, and any options.
func NewSink(client *fp.Client) *Sink {
	return &Sink{client: client}
}

// Log records the invocation as a Freeplay completion.
func (s *Sink) Log(ctx context.Context, record tunerkit.InvocationRecord) error {
	prompt, err := json.Marshal(record.Params)
	if err != nil {
		return err
	}
	response, err := json.Marshal(record.Response)
	if err != nil {
		return err
	}

	start := record.Timing.Start.Time()
	end := record.Timing.End.Time()

	model, _ := record.Params["model"].(string)

	s.client.RecordCompletion(fp.CompletionData{
		TraceID:    record.Headers[tunerkit.HeaderSessionID],
		Prompt:     string(prompt),
		Response:   string(response),
		Model:      model,
		Provider:   "tunerkit",
		StartTime:  start,
		EndTime:    end,
		DurationMS: end.Sub(start).Milliseconds(),
	})
	return nil
}

var _ tunerkit.Sink = (*Sink)(nil)
