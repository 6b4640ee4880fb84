package tunerkit

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Node is a lazy handle on a dotted path inside the wrapped client. Building
// a node never touches the wrapped object; only Call resolves the path, and
// it re-resolves on every invocation so that sub-clients added or replaced
// at runtime are honored.
type Node struct {
	client *Client
	path   []string
}

// Path returns a node for the given path segments.
func (c *Client) Path(segments ...string) *Node {
	return &Node{client: c, path: segments}
}

// Get returns a child node one segment deeper. No resolution happens.
func (n *Node) Get(segment string) *Node {
	path := make([]string, len(n.path), len(n.path)+1)
	copy(path, n.path)
	return &Node{client: n.client, path: append(path, segment)}
}

// Call invokes the method at a dotted path, e.g.
//
//	client.Call(ctx, "chat.completions.create", params)
//
// It is shorthand for Path(...).Call(...).
func (c *Client) Call(ctx context.Context, path string, params Params, opts ...CallOption) (any, error) {
	return c.Path(strings.Split(path, ".")...).Call(ctx, params, opts...)
}

// Call resolves the node's path against the wrapped client and invokes the
// terminal method with the full interception protocol: session headers are
// merged in, the simulation gate runs when the session type is SessionTest
// or WithDev(true) is given, streaming results are accumulated, and a record
// is dispatched fire-and-forget to the log endpoint and attached sinks.
//
// Errors from the underlying method propagate unchanged. Observability
// failures never reach the caller.
func (n *Node) Call(ctx context.Context, params Params, opts ...CallOption) (any, error) {
	var cfg callConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c := n.client
	session := c.currentSession()
	headers := mergeHeaders(cfg.headers, session.headers())

	fn, err := resolve(c.target, n.path)
	if err != nil {
		return nil, err
	}

	simulate := cfg.dev || session.SessionType == SessionTest
	return c.invoke(ctx, strings.Join(n.path, "."), fn, params, headers, cfg.meta, simulate)
}

// callable is the normalized shape every resolved method is adapted to.
type callable func(ctx context.Context, params Params) (any, error)

// invoke runs the shared simulate-or-execute protocol around fn. Timing
// spans the gate, the real call, and stream accumulation.
func (c *Client) invoke(ctx context.Context, tag string, fn callable, params Params, headers Headers, meta map[string]string, simulate bool) (any, error) {
	start := newTimePoint(time.Now())

	if simulate {
		decision, err := c.simulate(ctx, params, headers)
		if err != nil {
			return nil, err
		}
		if !decision.RunModel {
			c.dispatch(InvocationRecord{
				Path:     tag,
				Params:   params,
				Response: decision.Response,
				Headers:  headers,
				Meta:     meta,
				Timing:   TimingRecord{Start: start, End: newTimePoint(time.Now())},
			})
			return decision.Response, nil
		}
	}

	result, err := fn(ctx, params)
	if err != nil {
		// The caller received an error, not a response; nothing to log.
		return nil, err
	}

	if wantsStream(params) {
		result, err = normalizeStream(result)
		if err != nil {
			return nil, err
		}
	}

	c.dispatch(InvocationRecord{
		Path:     tag,
		Params:   params,
		Response: result,
		Headers:  headers,
		Meta:     meta,
		Timing:   TimingRecord{Start: start, End: newTimePoint(time.Now())},
	})
	return result, nil
}

var (
	ctxType    = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType    = reflect.TypeOf((*error)(nil)).Elem()
	paramsType = reflect.TypeOf(Params(nil))
)

// resolve walks path against root, segment by segment. Each hop tries, in
// order: a method on the current value (exact name, then case-insensitive),
// a string-keyed map entry, an exported struct field (exact, then
// case-insensitive), dereferencing pointers and interfaces as needed. The
// terminal value must be a func taking (context.Context, Params) or just
// (Params) and returning (any, error); the method's receiver binding is the
// natural one from its parent object.
func resolve(root any, path []string) (callable, error) {
	if len(path) == 0 {
		return nil, &MethodNotFoundError{Path: path, Segment: "", Reason: "empty path"}
	}
	v := reflect.ValueOf(root)
	for _, seg := range path {
		next, ok := lookup(v, seg)
		if !ok {
			return nil, &MethodNotFoundError{Path: path, Segment: seg}
		}
		v = next
	}
	return asCallable(v, path)
}

func lookup(v reflect.Value, seg string) (reflect.Value, bool) {
	for {
		if !v.IsValid() {
			return reflect.Value{}, false
		}
		if m, ok := methodByNameFold(v, seg); ok {
			return m, true
		}
		switch v.Kind() {
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return reflect.Value{}, false
			}
			entry := v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
			if !entry.IsValid() {
				return reflect.Value{}, false
			}
			return entry, true
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		case reflect.Struct:
			return fieldByNameFold(v, seg)
		default:
			return reflect.Value{}, false
		}
	}
}

func methodByNameFold(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	if m := v.MethodByName(name); m.IsValid() {
		return m, true
	}
	for i := 0; i < t.NumMethod(); i++ {
		if strings.EqualFold(t.Method(i).Name, name) {
			return v.Method(i), true
		}
	}
	return reflect.Value{}, false
}

func fieldByNameFold(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == name || strings.EqualFold(f.Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// asCallable validates the terminal value's shape and adapts it to the
// normalized callable signature.
func asCallable(v reflect.Value, path []string) (callable, error) {
	last := path[len(path)-1]
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, &MethodNotFoundError{Path: path, Segment: last, Reason: "terminal value is not callable"}
	}

	t := v.Type()
	var takesCtx bool
	switch {
	case t.NumIn() == 2 && t.In(0) == ctxType && paramsType.AssignableTo(t.In(1)):
		takesCtx = true
	case t.NumIn() == 1 && paramsType.AssignableTo(t.In(0)):
	default:
		return nil, &MethodNotFoundError{Path: path, Segment: last, Reason: "unsupported signature " + t.String()}
	}
	if t.NumOut() != 2 || t.Out(1) != errType {
		return nil, &MethodNotFoundError{Path: path, Segment: last, Reason: "unsupported signature " + t.String()}
	}

	return func(ctx context.Context, params Params) (any, error) {
		args := make([]reflect.Value, 0, 2)
		if takesCtx {
			args = append(args, reflect.ValueOf(ctx))
		}
		pv := reflect.ValueOf(params)
		if !pv.IsValid() {
			pv = reflect.Zero(paramsType)
		}
		args = append(args, pv.Convert(t.In(len(args))))

		out := v.Call(args)
		var err error
		if e := out[1].Interface(); e != nil {
			err = e.(error)
		}
		return out[0].Interface(), err
	}, nil
}
