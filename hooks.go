package kestrel

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stock hooks covering the common pre-processing steps: body parsing, query
// parameter bounds, and path field conversion. Each is an ordinary Hook and
// composes with user hooks in the usual chain order.

// ParseBody returns a hook that JSON-decodes the request body into
// params[key] when a body is present. A malformed body aborts with 400.
func ParseBody(key string) Hook {
	return HookFunc(func(req *Request, _ *Response, _ any, params Params) error {
		if req.ContentLength() == 0 {
			return nil
		}
		var doc any
		if err := json.NewDecoder(req.BoundedStream()).Decode(&doc); err != nil {
			return BadRequest("Invalid JSON", "Could not parse the request body.")
		}
		params[key] = doc
		return nil
	})
}

// ParamMax returns a hook that rejects requests whose integer query
// parameter exceeds max. Absent parameters pass.
func ParamMax(name string, max int) Hook {
	return HookFunc(func(req *Request, _ *Response, _ any, _ Params) error {
		v, ok := req.QueryInt(name)
		if ok && v > max {
			return BadRequest("Out of Range", fmt.Sprintf("%s must be <= %d", name, max))
		}
		return nil
	})
}

// FieldInt returns a hook that converts the named path capture in Params
// from string to int, aborting with 400 when it is not numeric.
func FieldInt(name string) Hook {
	return HookFunc(func(_ *Request, _ *Response, _ any, params Params) error {
		s, ok := params.GetString(name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return BadRequest("", "")
		}
		params[name] = n
		return nil
	})
}
