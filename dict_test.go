package kestrel_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/kestrel"
)

func TestDict_SetGetDelete(t *testing.T) {
	t.Parallel()

	var d kestrel.Dict
	d.Set("a", 1)
	d.Set("b", "two")
	d.Set("c", 3)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())

	v, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", v)

	// Replacing keeps the original position.
	d.Set("a", 10)
	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())
	v, _ = d.Get("a")
	assert.Equal(t, 10, v)

	d.Delete("b")
	assert.Equal(t, []string{"a", "c"}, d.Keys())

	_, ok = d.Get("b")
	assert.False(t, ok)
}

func TestDict_MarshalJSON_order(t *testing.T) {
	t.Parallel()

	var inner kestrel.Dict
	inner.Set("x", "1")
	inner.Set("y", "2")

	var d kestrel.Dict
	d.Set("zz", "last-name-first")
	d.Set("aa", 5)
	d.Set("nested", &inner)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zz":"last-name-first","aa":5,"nested":{"x":"1","y":"2"}}`, string(b))

	// Insertion order, not lexical order.
	assert.Equal(t, `{"zz":"last-name-first","aa":5,"nested":{"x":"1","y":"2"}}`, string(kestrel.EncodeDict(d)))
}

func TestEncodeDict_noEscaping(t *testing.T) {
	t.Parallel()

	var d kestrel.Dict
	d.Set("href", "http://example.com?a=1&b=<2>")
	d.Set("text", "café")

	assert.Equal(t, `{"href":"http://example.com?a=1&b=<2>","text":"café"}`, string(kestrel.EncodeDict(d)))
}
