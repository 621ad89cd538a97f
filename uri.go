package kestrel

import "strings"

const upperhex = "0123456789ABCDEF"

// uriSafe holds the bytes that pass through encodeURI untouched: unreserved
// characters, the reserved gen-delims and sub-delims, and '%' so that
// already-encoded input is not encoded twice.
var uriSafe = func() [256]bool {
	var safe [256]bool
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz" +
		"0123456789" +
		"-._~" +
		":/?#[]@" +
		"!$&'()*+,;=" +
		"%"
	for i := 0; i < len(chars); i++ {
		safe[chars[i]] = true
	}
	return safe
}()

// encodeURI percent-encodes every byte of s that is not an unreserved or
// reserved URI character. Multi-byte UTF-8 sequences come out as one escape
// per byte.
func encodeURI(s string) string {
	encode := false
	for i := 0; i < len(s); i++ {
		if !uriSafe[s[i]] {
			encode = true
			break
		}
	}
	if !encode {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriSafe[c] {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}
