// Package chibind adapts chi routers to the bind.Router interface.
package chibind

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router wraps a chi.Router for binding. chi matches the document's
// brace syntax natively, so path templates pass through unchanged.
type Router struct {
	mux chi.Router
}

// New wraps mux.
func New(mux chi.Router) *Router {
	return &Router{mux: mux}
}

// Handle registers h for method and path.
func (r *Router) Handle(method, path string, h http.Handler) {
	r.mux.Method(method, path, h)
}

// Translate returns the template unchanged.
func (r *Router) Translate(template string) string { return template }
