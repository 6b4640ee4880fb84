package tunerkit

import (
	"time"

	"github.com/google/uuid"
)

// SessionType selects how proxied calls inside a session behave.
type SessionType string

const (
	// SessionReal executes calls against the real wrapped client.
	SessionReal SessionType = "real"
	// SessionTest routes every proxied call through the simulation gate.
	SessionTest SessionType = "test"
)

// SessionContext holds the correlation identifiers attached to every
// outgoing log and simulation request. One context is shared by all proxied
// call sites of a client; it is only ever overwritten, never destroyed.
type SessionContext struct {
	DatasetID       string
	SessionID       string
	RecordID        string
	SessionParentID string
	SessionName     string
	SessionType     SessionType
}

func (s SessionContext) headers() Headers {
	h := Headers{}
	if s.DatasetID != "" {
		h[HeaderDatasetID] = s.DatasetID
	}
	if s.SessionID != "" {
		h[HeaderSessionID] = s.SessionID
	}
	if s.RecordID != "" {
		h[HeaderRecordID] = s.RecordID
	}
	if s.SessionParentID != "" {
		h[HeaderSessionParentID] = s.SessionParentID
	}
	if s.SessionName != "" {
		h[HeaderSessionName] = s.SessionName
	}
	if s.SessionType != "" {
		h[HeaderSessionType] = string(s.SessionType)
	}
	return h
}

// SessionOption configures a StartSession call.
type SessionOption func(*SessionContext)

// WithSessionID supplies the session id instead of generating one.
func WithSessionID(id string) SessionOption {
	return func(s *SessionContext) {
		s.SessionID = id
	}
}

// WithRecordID supplies the record id instead of generating one.
func WithRecordID(id string) SessionOption {
	return func(s *SessionContext) {
		s.RecordID = id
	}
}

// WithParentID links the session to a parent session.
func WithParentID(id string) SessionOption {
	return func(s *SessionContext) {
		s.SessionParentID = id
	}
}

// WithSessionType sets the session type. SessionTest activates the
// simulation gate for all proxied calls; the default is SessionReal.
func WithSessionType(t SessionType) SessionOption {
	return func(s *SessionContext) {
		s.SessionType = t
	}
}

// StartSession opens a session: missing session and record ids are
// generated, the result becomes the client's active session context, and a
// boundary log event tagged __START__ carrying inputs is dispatched. The
// returned header set identifies the session; pass it into subsequent
// correlated operations or hold it for EndSession.
//
// Sessions are expected to be set up before a batch of correlated calls, not
// concurrently with them; a StartSession racing in-flight calls makes it
// caller-ordering-dependent which session those calls are attributed to.
func (c *Client) StartSession(inputs Params, datasetID string, opts ...SessionOption) Headers {
	session := SessionContext{
		DatasetID:   datasetID,
		SessionType: SessionReal,
	}
	for _, opt := range opts {
		opt(&session)
	}
	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}
	if session.RecordID == "" {
		session.RecordID = uuid.New().String()
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	headers := session.headers()
	c.emitBoundary(inputs, headers, SessionPathStart)
	return headers
}

// EndSession closes the session identified by headers with a boundary log
// event tagged __END__ carrying outputs. The headers need not match the
// currently-active context, so a session captured earlier can be closed
// after the active context has moved on. Boundary events are not required to
// pair; the log store reconciles session completeness.
func (c *Client) EndSession(outputs Params, headers Headers) {
	c.emitBoundary(outputs, headers, SessionPathEnd)
}

// SetSession overwrites the active session's identifying fields without
// emitting boundary events. This is the lightweight variant used alongside
// WrapFunc wrappers.
func (c *Client) SetSession(sessionID, sessionName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SessionID = sessionID
	c.session.SessionName = sessionName
}

func (c *Client) currentSession() SessionContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) emitBoundary(payload Params, headers Headers, marker string) {
	tagged := headers.clone()
	tagged[HeaderSessionPath] = marker
	now := newTimePoint(time.Now())
	c.dispatch(InvocationRecord{
		Path:    "session",
		Params:  payload,
		Headers: tagged,
		Timing:  TimingRecord{Start: now, End: now},
	})
}
