package kestrel

// Hook is a pre-processing step run before a handler body. A hook may
// mutate the shared Params, mutate the response, or abort the request by
// returning a *Error. Returning nil continues the chain.
//
// res is the owner value of the resource the handler belongs to (see
// WithOwner), for hooks that need resource-level configuration.
type Hook interface {
	Before(req *Request, resp *Response, res any, params Params) error
}

// HookFunc adapts a plain function to the Hook interface. Method values with
// the right signature adapt the same way, bound to their receiver at
// registration time:
//
//	res.Handle("GET", "", h, kestrel.HookFunc(auth.Check))
type HookFunc func(req *Request, resp *Response, res any, params Params) error

// Before implements Hook.
func (f HookFunc) Before(req *Request, resp *Response, res any, params Params) error {
	return f(req, resp, res, params)
}

// boundHook captures a callable plus extra arguments bound at registration
// time, passed to the callable on every invocation after the mandatory four.
type boundHook struct {
	fn   func(req *Request, resp *Response, res any, params Params, args ...any) error
	args []any
}

// Before implements Hook.
func (b *boundHook) Before(req *Request, resp *Response, res any, params Params) error {
	return b.fn(req, resp, res, params, b.args...)
}

// Bind returns a Hook that invokes fn with args appended after the four
// standard parameters. The arguments are captured once, at registration time.
func Bind(fn func(req *Request, resp *Response, res any, params Params, args ...any) error, args ...any) Hook {
	return &boundHook{fn: fn, args: args}
}

// buildChain concatenates resource-level hooks with handler-level hooks into
// a fresh slice. Resource hooks run first, in declaration order, then
// handler hooks in declaration order. The result is never mutated after
// construction, so it is safe for concurrent use across requests.
func buildChain(resourceHooks, handlerHooks []Hook) []Hook {
	if len(resourceHooks) == 0 && len(handlerHooks) == 0 {
		return nil
	}
	chain := make([]Hook, 0, len(resourceHooks)+len(handlerHooks))
	chain = append(chain, resourceHooks...)
	chain = append(chain, handlerHooks...)
	return chain
}

// runHooks executes the chain strictly in order. The first non-nil error
// stops the chain; remaining hooks and the handler body do not run.
func runHooks(chain []Hook, req *Request, resp *Response, res any, params Params) error {
	for _, h := range chain {
		if err := h.Before(req, resp, res, params); err != nil {
			return err
		}
	}
	return nil
}
