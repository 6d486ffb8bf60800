// Package echobind adapts echo instances to the bind.Router interface.
package echobind

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Router wraps an *echo.Echo for binding. Echo matches the
// leading-colon parameter syntax the default translation produces, so
// no Translate override is needed.
type Router struct {
	e *echo.Echo
}

// New wraps e.
func New(e *echo.Echo) *Router {
	return &Router{e: e}
}

// Handle registers h for method and path.
func (r *Router) Handle(method, path string, h http.Handler) {
	r.e.Add(method, path, echo.WrapHandler(h))
}
