package tunerkit

// Params is the argument payload for an intercepted call. A "stream" key set
// to true marks the call as stream-returning.
type Params map[string]any

// InvocationRecord is the unit handed to a logging sink once a call has
// finished. Response always equals the value the original caller received,
// whether real or simulated; the log path and the return path never diverge.
type InvocationRecord struct {
	// Path is the dotted method path (or WrapFunc name) that was invoked.
	// Session boundary events use the synthetic path "session".
	Path     string
	Params   Params
	Response any
	Headers  Headers
	Meta     map[string]string
	Timing   TimingRecord
}
