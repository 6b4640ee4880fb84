package tunerkit

// Headers is the wire representation of correlation metadata attached to
// outgoing log and simulation requests. Empty values are omitted from the
// wire, never sent as empty strings.
type Headers map[string]string

// Correlation header names carried on log and simulation requests.
const (
	HeaderDatasetID       = "Tunerkit-Dataset-Id"
	HeaderSessionID       = "Tunerkit-Session-Id"
	HeaderRecordID        = "Tunerkit-Record-Id"
	HeaderSessionParentID = "Tunerkit-Session-Parent-Id"
	HeaderSessionType     = "Tunerkit-Session-Type"
	HeaderSessionName     = "Tunerkit-Session-Name"
	HeaderSessionPath     = "Tunerkit-Session-Path"
)

// Session boundary markers carried in HeaderSessionPath. Ordinary call logs
// leave the header unset.
const (
	SessionPathStart = "__START__"
	SessionPathEnd   = "__END__"
)

func (h Headers) clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// mergeHeaders combines explicit per-call headers with session-derived
// headers. Explicit headers win for fields they define; session fields fill
// the gaps. Empty values are dropped.
func mergeHeaders(explicit, session Headers) Headers {
	merged := make(Headers, len(explicit)+len(session))
	for k, v := range session {
		if v != "" {
			merged[k] = v
		}
	}
	for k, v := range explicit {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
