package kestrel_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/kestrel"
)

func TestSetGetValue(t *testing.T) {
	t.Parallel()

	type userID string
	type orgID string

	req := httptest.NewRequest("GET", "/", nil)
	req = kestrel.SetValue(req, userID("u-1"))
	req = kestrel.SetValue(req, orgID("o-2"))

	u, ok := kestrel.GetValue[userID](req.Context())
	require.True(t, ok)
	assert.Equal(t, userID("u-1"), u)

	o, ok := kestrel.GetValue[orgID](req.Context())
	require.True(t, ok)
	assert.Equal(t, orgID("o-2"), o)

	// Distinct types do not collide even with identical underlying values.
	type other string
	_, ok = kestrel.GetValue[other](req.Context())
	assert.False(t, ok)
}
