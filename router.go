package kestrel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Router mounts resources and dispatches requests through their hook chains.
// It implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []RouteInfo

	renderers *rendererRegistry
	logger    *slog.Logger

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithErrorRenderer registers an additional wire format for error bodies,
// selected by Accept-header negotiation.
func WithErrorRenderer(r ErrorRenderer) RouterOption {
	return func(rt *Router) {
		rt.renderers.renderers = append(rt.renderers.renderers, r)
	}
}

// WithRouterLogger sets the logger used for dispatch-level diagnostics.
// Defaults to slog.Default.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(rt *Router) {
		rt.logger = l
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	rt := &Router{
		mux:       http.NewServeMux(),
		renderers: newRendererRegistry(nil),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Use adds middleware to the router. Middleware is applied in the order added.
func (rt *Router) Use(mw ...Middleware) {
	rt.middleware = append(rt.middleware, mw...)
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := http.Handler(rt.mux)
	for i := len(rt.middleware) - 1; i >= 0; i-- {
		handler = rt.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (rt *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           rt,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Add mounts a resource's default-suffix handlers at pattern. The pattern
// uses http.ServeMux syntax; {name} captures seed the per-request Params.
func (rt *Router) Add(pattern string, res *Resource) {
	rt.AddSuffix(pattern, "", res)
}

// AddSuffix mounts the handlers registered under the given suffix at
// pattern. Each handler's hook chain is frozen at this point: resource-level
// hooks first (declaration order), then the handler's own hooks. Requests
// with an unregistered method get a structured 405 with an Allow header.
func (rt *Router) AddSuffix(pattern, suffix string, res *Resource) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	names := paramNames(pattern)
	methods := res.methods(suffix)

	for _, method := range methods {
		entry := res.entries[handlerKey{method: method, suffix: suffix}]
		chain := buildChain(res.hooks, entry.hooks)
		rt.mux.Handle(method+" "+pattern, rt.dispatch(res.owner, chain, entry.handler, names))
		rt.routes = append(rt.routes, RouteInfo{
			Method:  method,
			Pattern: pattern,
			Suffix:  suffix,
			Hooks:   len(chain),
		})
	}

	if len(methods) > 0 {
		rt.mux.Handle(pattern, rt.notAllowed(methods))
	}
}

// dispatch wraps a handler and its frozen hook chain into an http.Handler.
// The chain slice is read-only after registration and shared by every
// request to this handler.
func (rt *Router) dispatch(owner any, chain []Hook, h HandlerFunc, names []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := newRequest(r)
		resp := newResponse()

		params := make(Params, len(names))
		for _, name := range names {
			params[name] = r.PathValue(name)
		}

		err := runHooks(chain, req, resp, owner, params)
		if err == nil {
			err = h(req, resp, params)
		}
		if err != nil {
			rt.writeError(w, r, resp, err)
			return
		}

		resp.flush(w)
	})
}

// notAllowed returns the fallback handler for methods not registered on a
// mounted pattern.
func (rt *Router) notAllowed(allowed []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt.writeError(w, r, newResponse(), MethodNotAllowed(allowed))
	})
}

// writeError converts an error raised by a hook or handler into a wire
// response. Structured errors go through the Error Model: status from the
// status line, error headers overriding anything hooks set on the response,
// and a negotiated body unless representation is suppressed. Anything else
// is a programming defect and surfaces as a bare 500.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, resp *Response, err error) {
	var se *Error
	if !errors.As(err, &se) {
		rt.logger.Error("unhandled handler error",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Headers set by hooks before the abort survive; the error's own
	// headers win on conflict, with their case preserved.
	dst := w.Header()
	for name, values := range resp.header {
		dst[name] = values
	}
	for _, hdr := range se.Headers {
		setRawHeader(dst, hdr.Name, hdr.Value)
	}

	if !se.HasRepresentation() {
		w.WriteHeader(se.StatusCode())
		return
	}

	renderer := rt.renderers.negotiate(r.Header.Get("Accept"))
	body := renderer.Render(err, se)

	dst.Set("Content-Type", renderer.ContentType())
	w.WriteHeader(se.StatusCode())
	w.Write(body) //nolint:errcheck,gosec // best-effort after WriteHeader
}

// paramNames extracts the {name} captures from a ServeMux pattern, in order.
func paramNames(pattern string) []string {
	var names []string
	for _, seg := range strings.Split(pattern, "/") {
		if len(seg) < 2 || seg[0] != '{' || seg[len(seg)-1] != '}' {
			continue
		}
		name := seg[1 : len(seg)-1]
		name = strings.TrimSuffix(name, "...")
		if name == "" || name == "$" {
			continue
		}
		names = append(names, name)
	}
	return names
}
