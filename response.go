package kestrel

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/textproto"
)

// Response buffers the outgoing status, headers, and body while the hook
// chain and handler run. Nothing touches the wire until dispatch finishes,
// so a structured error raised mid-chain can still take over the response.
type Response struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func newResponse() *Response {
	return &Response{header: make(http.Header)}
}

// SetStatus sets the response status code. The last call wins.
func (r *Response) SetStatus(code int) { r.status = code }

// Status returns the status code set so far, or 0 if none.
func (r *Response) Status() int { return r.status }

// SetHeader sets a response header, replacing any existing value.
func (r *Response) SetHeader(name, value string) {
	r.header.Set(name, value)
}

// GetHeader returns the first value of a response header, or "".
func (r *Response) GetHeader(name string) string {
	return r.header.Get(name)
}

// Write appends to the buffered body. It never fails.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// WriteString appends to the buffered body.
func (r *Response) WriteString(s string) {
	r.body.WriteString(s)
}

// Media JSON-encodes v as the response body and sets the Content-Type if it
// has not been set yet.
func (r *Response) Media(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if r.GetHeader("Content-Type") == "" {
		r.SetHeader("Content-Type", "application/json")
	}
	r.body.Reset()
	r.body.Write(b)
	return nil
}

// flush writes the buffered response to the wire. Status defaults to 200.
func (r *Response) flush(w http.ResponseWriter) {
	dst := w.Header()
	for name, values := range r.header {
		dst[name] = values
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if r.body.Len() > 0 {
		w.Write(r.body.Bytes()) //nolint:errcheck,gosec // best-effort after WriteHeader
	}
}

// setRawHeader assigns a header preserving the caller's exact case, removing
// any value previously stored under the canonical form of the name.
func setRawHeader(h http.Header, name, value string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(name))
	delete(h, name)
	h[name] = []string{value}
}
