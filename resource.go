package kestrel

import (
	"fmt"
	"net/http"
	"strings"
)

// HandlerFunc is the handler body signature. It receives the shared Params
// after all hooks have run and writes its result to resp. Returning a
// *Error aborts normal response finalization and renders the error instead.
type HandlerFunc func(req *Request, resp *Response, params Params) error

type handlerKey struct {
	method string
	suffix string
}

type handlerEntry struct {
	handler HandlerFunc
	hooks   []Hook // handler-level hooks, declaration order
}

// Resource is an explicit route table mapping (method, suffix) pairs to
// handlers and their hook chains. The suffix discriminates collection-level
// from item-level handlers mounted at different patterns.
//
// Registration is not safe for concurrent use; build resources during
// startup, then mount them on a Router. Mounting freezes each handler's
// chain, after which the resource may be served concurrently.
type Resource struct {
	owner   any
	hooks   []Hook // resource-level hooks, declaration order
	entries map[handlerKey]*handlerEntry
	order   []handlerKey
}

// ResourceOption configures a Resource.
type ResourceOption func(*Resource)

// WithOwner sets the value passed as the res argument to every hook on this
// resource, for hooks that need resource-level configuration.
func WithOwner(v any) ResourceOption {
	return func(r *Resource) {
		r.owner = v
	}
}

// NewResource creates an empty resource.
func NewResource(opts ...ResourceOption) *Resource {
	r := &Resource{entries: make(map[handlerKey]*handlerEntry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Before attaches resource-level hooks. They execute before every handler's
// own hooks, in the order given here, regardless of whether Before is called
// before or after Handle.
func (r *Resource) Before(hooks ...Hook) *Resource {
	r.hooks = append(r.hooks, hooks...)
	return r
}

// Handle registers a handler for an HTTP method and routing suffix. Suffix
// "" is the default route; a named suffix (e.g. "collection") is mounted
// separately via Router.AddSuffix. Hooks run in the order given, after any
// resource-level hooks.
//
// Registering the same (method, suffix) pair twice replaces the handler and
// its hooks entirely — chains are never merged across registrations.
func (r *Resource) Handle(method, suffix string, h HandlerFunc, hooks ...Hook) *Resource {
	if h == nil {
		panic("kestrel: nil handler for " + method)
	}
	if !validMethod(method) {
		panic(fmt.Sprintf("kestrel: invalid method %q", method))
	}
	if !validSuffix(suffix) {
		panic(fmt.Sprintf("kestrel: invalid suffix %q", suffix))
	}

	key := handlerKey{method: method, suffix: suffix}
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = &handlerEntry{
		handler: h,
		hooks:   append([]Hook(nil), hooks...),
	}
	return r
}

// Get registers a GET handler for the default suffix.
func (r *Resource) Get(h HandlerFunc, hooks ...Hook) *Resource {
	return r.Handle(http.MethodGet, "", h, hooks...)
}

// Post registers a POST handler for the default suffix.
func (r *Resource) Post(h HandlerFunc, hooks ...Hook) *Resource {
	return r.Handle(http.MethodPost, "", h, hooks...)
}

// Put registers a PUT handler for the default suffix.
func (r *Resource) Put(h HandlerFunc, hooks ...Hook) *Resource {
	return r.Handle(http.MethodPut, "", h, hooks...)
}

// Delete registers a DELETE handler for the default suffix.
func (r *Resource) Delete(h HandlerFunc, hooks ...Hook) *Resource {
	return r.Handle(http.MethodDelete, "", h, hooks...)
}

// Extend returns a copy of the resource for overriding individual handlers.
// Inherited handlers keep their full chains, resource-level hooks included.
// A handler re-registered on the copy starts from a clean slate: it gets
// only the hooks declared at re-registration (plus any Before hooks added
// to the copy itself) — chains are never inherited across an override.
func (r *Resource) Extend() *Resource {
	child := &Resource{
		owner:   r.owner,
		entries: make(map[handlerKey]*handlerEntry, len(r.entries)),
		order:   append([]handlerKey(nil), r.order...),
	}
	// Bake the parent's resource hooks into each inherited chain so that
	// overrides on the child do not pick them up.
	for key, e := range r.entries {
		child.entries[key] = &handlerEntry{
			handler: e.handler,
			hooks:   buildChain(r.hooks, e.hooks),
		}
	}
	return child
}

// methods returns the HTTP methods registered for a suffix, in registration
// order.
func (r *Resource) methods(suffix string) []string {
	var out []string
	for _, key := range r.order {
		if key.suffix == suffix {
			out = append(out, key.method)
		}
	}
	return out
}

func validMethod(method string) bool {
	if method == "" {
		return false
	}
	for i := 0; i < len(method); i++ {
		if method[i] < 'A' || method[i] > 'Z' {
			return false
		}
	}
	return true
}

func validSuffix(suffix string) bool {
	return !strings.ContainsAny(suffix, " /{}")
}
