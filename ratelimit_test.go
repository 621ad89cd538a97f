package kestrel_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/kestrel"
	"github.com/kestrelhq/kestrel/kestreltest"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	res := kestrel.NewResource()
	res.Get(noopHandler, kestrel.RateLimit(kestrel.RateLimitConfig{
		Rate:  1,
		Burst: 2,
		KeyFunc: func(*kestrel.Request) string {
			return "fixed"
		},
	}))

	r := kestrel.New()
	r.Add("/limited", res)
	c := kestreltest.NewClient(t, r)

	// Burst of 2 passes, third request is rejected with a structured 429.
	require.Equal(t, http.StatusOK, c.Get(t, "/limited").Status)
	require.Equal(t, http.StatusOK, c.Get(t, "/limited").Status)

	result := c.Get(t, "/limited")
	assert.Equal(t, http.StatusTooManyRequests, result.Status)
	assert.Equal(t, "1", result.Headers.Get("Retry-After"))

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	result.JSON(t, &body)
	assert.Equal(t, "Too Many Requests", body.Title)
	assert.Equal(t, "rate limit exceeded", body.Description)
}

func TestRateLimit_perKey(t *testing.T) {
	t.Parallel()

	key := "a"
	res := kestrel.NewResource()
	res.Get(noopHandler, kestrel.RateLimit(kestrel.RateLimitConfig{
		Rate:  1,
		Burst: 1,
		KeyFunc: func(*kestrel.Request) string {
			return key
		},
	}))

	r := kestrel.New()
	r.Add("/limited", res)
	c := kestreltest.NewClient(t, r)

	require.Equal(t, http.StatusOK, c.Get(t, "/limited").Status)
	require.Equal(t, http.StatusTooManyRequests, c.Get(t, "/limited").Status)

	// A different key gets its own limiter.
	key = "b"
	assert.Equal(t, http.StatusOK, c.Get(t, "/limited").Status)
}
