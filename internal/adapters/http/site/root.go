// Package site serves the HTML report written by the last run.
package site

import (
	"context"
	"errors"
	"net/http"
	"os"
)

// ErrServe is returned when the report file cannot be served.
var ErrServe = errors.New("report serve failed")

// Register serves the report at path on "/" and "/report". Other paths 404.
func Register(_ context.Context, mux *http.ServeMux, path string) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewRootHandler(path)
	mux.HandleFunc("/{$}", h.HandleRoot)
	mux.HandleFunc("/report", h.HandleRoot)
}

// RootHandler serves a single report file.
type RootHandler struct {
	path string
}

// NewRootHandler creates a handler for the report at path.
func NewRootHandler(path string) *RootHandler {
	return &RootHandler{path: path}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(h.path); err != nil {
		http.Error(w, ErrServe.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, h.path)
}
