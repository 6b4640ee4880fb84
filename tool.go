package tunerkit

import "context"

// Func is the plain function shape WrapFunc instruments.
type Func func(ctx context.Context, params Params) (any, error)

// WrapFunc applies the interception protocol to a single, statically-known
// function instead of a proxied path: session headers are merged in, the
// simulation gate runs when the wrapper was built with WithDev(true), and a
// record tagged with name is dispatched fire-and-forget. Resolution is
// trivial here, so unlike proxied calls the session type does not activate
// the gate; WithDev is the only trigger.
//
// Pair with SetSession to correlate wrapped-function calls without emitting
// session boundary events.
func (c *Client) WrapFunc(name string, fn Func, opts ...CallOption) Func {
	var cfg callConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(ctx context.Context, params Params) (any, error) {
		session := c.currentSession()
		headers := mergeHeaders(cfg.headers, session.headers())
		return c.invoke(ctx, name, callable(fn), params, headers, cfg.meta, cfg.dev)
	}
}
