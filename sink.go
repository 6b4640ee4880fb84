package tunerkit

import "context"

// Sink receives finished invocation records for delivery to a logging
// backend. Delivery is best-effort: the client calls Log on a background
// goroutine, reports returned errors on its diagnostic logger, and never
// lets them reach the original caller.
//
// Implementations should be safe for concurrent use and must not panic past
// their own boundary. A record with nil Params is a caller programming
// error; report it with a returned error rather than failing hard.
type Sink interface {
	Log(ctx context.Context, record InvocationRecord) error
}
