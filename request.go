package kestrel

import (
	"context"
	"io"
	"net/http"
	"strconv"
)

// Request is the narrow view of the incoming request that hooks and handlers
// receive: a bounded body stream, header and query lookup, and the request
// context.
type Request struct {
	raw *http.Request
}

func newRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Method returns the HTTP method.
func (r *Request) Method() string { return r.raw.Method }

// Path returns the request URL path.
func (r *Request) Path() string { return r.raw.URL.Path }

// Header returns the first value of the named request header.
func (r *Request) Header(name string) string {
	return r.raw.Header.Get(name)
}

// Query returns the named query parameter, or "" if absent.
func (r *Request) Query(name string) string {
	return r.raw.URL.Query().Get(name)
}

// QueryInt returns the named query parameter as an int. The second return is
// false when the parameter is absent or not an integer.
func (r *Request) QueryInt(name string) (int, bool) {
	s := r.raw.URL.Query().Get(name)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ContentLength returns the declared request body length, or 0 when unknown.
func (r *Request) ContentLength() int64 {
	if r.raw.ContentLength < 0 {
		return 0
	}
	return r.raw.ContentLength
}

// BoundedStream returns a reader over the request body limited to the
// declared Content-Length.
func (r *Request) BoundedStream() io.Reader {
	return io.LimitReader(r.raw.Body, r.ContentLength())
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.raw.Context()
}

// RemoteAddr returns the client network address.
func (r *Request) RemoteAddr() string { return r.raw.RemoteAddr }

// Unwrap returns the underlying *http.Request for interop with standard
// middleware.
func (r *Request) Unwrap() *http.Request { return r.raw }
