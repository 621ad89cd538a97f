package kestrel

import (
	"encoding/json"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// RouteInfo describes one mounted route for introspection.
type RouteInfo struct {
	Method  string `json:"method" yaml:"method"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Suffix  string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Hooks   int    `json:"hooks" yaml:"hooks"`
}

// Table returns the mounted routes in registration order.
func (rt *Router) Table() []RouteInfo {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]RouteInfo(nil), rt.routes...)
}

// WriteTable writes the route table as indented JSON to w.
func (rt *Router) WriteTable(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rt.Table())
}

// WriteTableYAML writes the route table as YAML to w.
func (rt *Router) WriteTableYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(rt.Table())
}

// ServeTable registers a GET handler at the given path that serves the
// route table as JSON.
func (rt *Router) ServeTable(pattern string) {
	rt.mux.HandleFunc("GET "+pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(rt.Table())
	})
}

// ServeTableYAML registers a GET handler at the given path that serves the
// route table as YAML.
func (rt *Router) ServeTableYAML(pattern string) {
	rt.mux.HandleFunc("GET "+pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		yaml.NewEncoder(w).Encode(rt.Table())
	})
}
