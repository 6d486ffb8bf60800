// Package ginbind adapts gin engines to the bind.Router interface.
package ginbind

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router wraps a *gin.Engine for binding. Gin matches the
// leading-colon parameter syntax the default translation produces, so
// no Translate override is needed.
type Router struct {
	engine *gin.Engine
}

// New wraps engine.
func New(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Handle registers h for method and path.
func (r *Router) Handle(method, path string, h http.Handler) {
	r.engine.Handle(method, path, gin.WrapH(h))
}
