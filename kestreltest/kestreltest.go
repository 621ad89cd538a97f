// Package kestreltest provides test helpers for the kestrel framework.
package kestreltest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client wraps an httptest.Server for convenient request simulation.
type Client struct {
	Server *httptest.Server
}

// NewClient creates a test client from any http.Handler, usually a
// *kestrel.Router.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Result holds a completed test response.
type Result struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// JSON decodes the response body into v.
func (r *Result) JSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("kestreltest: decode body %q: %v", r.Body, err)
	}
}

// Get sends a GET request.
func (c *Client) Get(t testing.TB, path string) *Result {
	t.Helper()
	return c.Do(t, http.MethodGet, path, nil, nil)
}

// Post sends a POST request with a JSON body. body may be nil.
func (c *Client) Post(t testing.TB, path string, body any) *Result {
	t.Helper()
	return c.Do(t, http.MethodPost, path, body, nil)
}

// Put sends a PUT request with a JSON body. body may be nil.
func (c *Client) Put(t testing.TB, path string, body any) *Result {
	t.Helper()
	return c.Do(t, http.MethodPut, path, body, nil)
}

// Delete sends a DELETE request.
func (c *Client) Delete(t testing.TB, path string) *Result {
	t.Helper()
	return c.Do(t, http.MethodDelete, path, nil, nil)
}

// DoRaw sends a request with an exact byte body, bypassing JSON encoding.
func (c *Client) DoRaw(t testing.TB, method, path, contentType string, body []byte) *Result {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("kestreltest: create request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("kestreltest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("kestreltest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("kestreltest: read body: %v", err)
	}

	return &Result{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    raw,
	}
}

// Do sends a request with an optional JSON body and extra headers.
func (c *Client) Do(t testing.TB, method, path string, body any, headers http.Header) *Result {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("kestreltest: marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("kestreltest: create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, values := range headers {
		req.Header[name] = values
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("kestreltest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("kestreltest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("kestreltest: read body: %v", err)
	}

	return &Result{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    raw,
	}
}
