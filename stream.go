package tunerkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Stream is the chunked emitter shape a wrapped method returns when called
// with params["stream"] == true. Recv returns chunks in arrival order and
// io.EOF once the stream completes.
type Stream interface {
	Recv() (string, error)
}

// ChanStream adapts a string channel to the Stream interface. The channel
// closing marks stream completion.
type ChanStream <-chan string

// Recv returns the next chunk, or io.EOF once the channel is closed.
func (s ChanStream) Recv() (string, error) {
	chunk, ok := <-s
	if !ok {
		return "", io.EOF
	}
	return chunk, nil
}

func wantsStream(params Params) bool {
	v, ok := params["stream"].(bool)
	return ok && v
}

// normalizeStream fully buffers a streaming result and decodes it into the
// same structured shape a non-streaming call would have returned. Chunks are
// concatenated as raw bytes before the single decode, so a multi-byte
// encoded unit split across chunk boundaries reassembles correctly. There is
// no partial delivery to the caller; the call only completes when the stream
// does.
func normalizeStream(result any) (any, error) {
	stream, err := asStream(result)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A transport failure mid-stream is the underlying call's
			// error; it propagates unchanged.
			return nil, err
		}
		buf.WriteString(chunk)
	}

	var decoded any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		return nil, &StreamDecodeError{Raw: buf.String(), Err: err}
	}
	return decoded, nil
}

func asStream(result any) (Stream, error) {
	switch s := result.(type) {
	case Stream:
		return s, nil
	case <-chan string:
		return ChanStream(s), nil
	case chan string:
		return ChanStream(s), nil
	default:
		return nil, &StreamDecodeError{Err: fmt.Errorf("streaming call returned %T, not a chunk stream", result)}
	}
}
