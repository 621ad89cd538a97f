package kestrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelhq/kestrel"
)

func TestEncodeURI(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"plain URL untouched": {
			in:   "http://example.com/docs",
			want: "http://example.com/docs",
		},
		"reserved characters preserved": {
			in:   "http://example.com/a?b=c&d=e#frag:/[]@!$'()*+,;=",
			want: "http://example.com/a?b=c&d=e#frag:/[]@!$'()*+,;=",
		},
		"space encoded": {
			in:   "http://example.com/a b",
			want: "http://example.com/a%20b",
		},
		"non-ASCII encoded per UTF-8 byte": {
			in:   "http://example.com/höhe",
			want: "http://example.com/h%C3%B6he",
		},
		"already-encoded percent not double-encoded": {
			in:   "http://example.com/a%20b",
			want: "http://example.com/a%20b",
		},
		"quotes and angle brackets encoded": {
			in:   `http://example.com/<a "b">`,
			want: "http://example.com/%3Ca%20%22b%22%3E",
		},
		"empty": {
			in:   "",
			want: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, kestrel.EncodeURI(tc.in))
		})
	}
}
