package kestrel

import "strconv"

// Params is the per-request mutable parameter mapping. The router seeds it
// with path-template captures, each hook in the chain sees every mutation
// made by earlier hooks, and the handler body reads only the keys it needs.
// A Params instance is never shared across requests.
type Params map[string]any

// GetString returns the value for key if it is a string.
func (p Params) GetString(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// GetInt returns the value for key if it is an int, converting a numeric
// string in place.
func (p Params) GetInt(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}
