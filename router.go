package bind

import "net/http"

// Router is the registration surface the Binder drives. Anything that
// can register a handler per method and path can be bound; adapters
// for chi, gin, and echo live in the chibind, ginbind, and echobind
// subpackages.
type Router interface {
	// Handle registers h for the given HTTP method and router-native path.
	Handle(method, path string, h http.Handler)
}

// Translator is implemented by routers whose native parameter syntax
// differs from the leading-colon default. When the bound Router
// implements it, the Binder uses it in place of TranslatePath.
type Translator interface {
	Translate(template string) string
}

// Mux adapts the standard library's ServeMux. ServeMux matches the
// brace syntax natively, so its Translate is the identity.
type Mux struct {
	mux *http.ServeMux
}

// NewMux returns a Mux backed by a fresh http.ServeMux.
func NewMux() *Mux {
	return &Mux{mux: http.NewServeMux()}
}

// Handle registers h under a "METHOD /path" ServeMux pattern.
func (m *Mux) Handle(method, path string, h http.Handler) {
	m.mux.Handle(method+" "+path, h)
}

// Translate returns the template unchanged.
func (m *Mux) Translate(template string) string { return template }

// ServeHTTP implements http.Handler.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}
