package kestrel_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelhq/kestrel"
	"github.com/kestrelhq/kestrel/kestreltest"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	res := kestrel.NewResource()
	res.Get(func(_ *kestrel.Request, _ *kestrel.Response, _ kestrel.Params) error {
		panic("boom")
	})

	r := kestrel.New()
	r.Use(kestrel.Recovery())
	r.Add("/panic", res)

	c := kestreltest.NewClient(t, r)
	result := c.Get(t, "/panic")
	assert.Equal(t, http.StatusInternalServerError, result.Status)
}

func TestMiddleware_ordering(t *testing.T) {
	t.Parallel()

	r := kestrel.New()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-First", "1")
			next.ServeHTTP(w, req)
		})
	})

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Second", "2")
			next.ServeHTTP(w, req)
		})
	})

	res := kestrel.NewResource()
	res.Get(noopHandler)
	r.Add("/test", res)

	c := kestreltest.NewClient(t, r)
	result := c.Get(t, "/test")

	assert.Equal(t, "1", result.Headers.Get("X-First"))
	assert.Equal(t, "2", result.Headers.Get("X-Second"))
}

func TestMiddleware_runsAboveDispatch(t *testing.T) {
	t.Parallel()

	// Middleware wraps the transport; it sees even requests that end in a
	// structured 405 from dispatch.
	r := kestrel.New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Seen", "yes")
			next.ServeHTTP(w, req)
		})
	})

	res := kestrel.NewResource()
	res.Get(noopHandler)
	r.Add("/only-get", res)

	c := kestreltest.NewClient(t, r)
	result := c.Delete(t, "/only-get")

	assert.Equal(t, http.StatusMethodNotAllowed, result.Status)
	assert.Equal(t, "yes", result.Headers.Get("X-Seen"))
}
