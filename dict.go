package kestrel

import (
	"bytes"
	"encoding/json"
)

// Dicter is implemented by errors that provide their own ordered payload.
// *Error implements it; types embedding *Error can override ToDict to
// customize the payload while reusing the stock JSON encoding.
type Dicter interface {
	ToDict() Dict
}

// XMLer is implemented by errors that provide their own XML representation.
type XMLer interface {
	ToXML() []byte
}

// Dict is an insertion-ordered string-keyed map. Its JSON encoding emits
// keys in insertion order, unlike a plain map.
type Dict struct {
	pairs []dictPair
}

type dictPair struct {
	key string
	val any
}

// Set adds a key, or replaces the value of an existing key in place.
func (d *Dict) Set(key string, val any) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			d.pairs[i].val = val
			return
		}
	}
	d.pairs = append(d.pairs, dictPair{key: key, val: val})
}

// Get returns the value for key and whether it is present.
func (d *Dict) Get(key string) (any, bool) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			return d.pairs[i].val, true
		}
	}
	return nil, false
}

// Delete removes a key if present.
func (d *Dict) Delete(key string) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			d.pairs = append(d.pairs[:i], d.pairs[i+1:]...)
			return
		}
	}
}

// Len returns the number of keys.
func (d *Dict) Len() int { return len(d.pairs) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, p := range d.pairs {
		keys[i] = p.key
	}
	return keys
}

// MarshalJSON implements json.Marshaler, preserving insertion order.
func (d Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNoEscape(p.val)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeDict returns the compact JSON encoding of d with HTML characters and
// non-ASCII left unescaped. Encoding a Dict of strings and numbers cannot
// fail, so the result is always valid JSON.
func EncodeDict(d Dict) []byte {
	b, err := marshalNoEscape(d)
	if err != nil {
		// Only reachable with an unencodable user value in the Dict,
		// which is a programming error.
		panic("kestrel: encode dict: " + err.Error())
	}
	return b
}

// marshalNoEscape marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
