package kestrel_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/kestrel"
	"github.com/kestrelhq/kestrel/kestreltest"
)

// syncBuffer guards concurrent writes from the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))

	res := kestrel.NewResource()
	res.Get(func(_ *kestrel.Request, _ *kestrel.Response, _ kestrel.Params) error {
		return kestrel.NotFound()
	})

	r := kestrel.New()
	r.Use(kestrel.RequestID(), kestrel.Logger(logger))
	r.Add("/missing", res)

	c := kestreltest.NewClient(t, r)
	result := c.Get(t, "/missing")
	require.Equal(t, http.StatusNotFound, result.Status)

	logged := out.String()
	assert.Contains(t, logged, "msg=request")
	assert.Contains(t, logged, "method=GET")
	assert.Contains(t, logged, "path=/missing")
	assert.Contains(t, logged, "status=404")
	assert.Contains(t, logged, "request_id=")
}
