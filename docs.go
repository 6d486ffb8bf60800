package bind

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAccessFilter responds 200 with the document as the body:
// YAML when the Accept header asks for it, JSON otherwise.
func DefaultAccessFilter(w http.ResponseWriter, r *http.Request, doc *Document) {
	if strings.Contains(r.Header.Get("Accept"), "yaml") {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		yaml.NewEncoder(w).Encode(doc)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(doc)
}

// docsHandler serves doc. Legacy documents are served from a copy with
// host and basePath patched from the live request; response writing is
// the access filter's job.
func (b *Binder) docsHandler(doc *Document, basePath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served := doc
		if doc.Legacy() {
			patched := doc.Clone()
			patched.Host = r.Host
			patched.BasePath = basePath
			if patched.BasePath == "" {
				patched.BasePath = "/"
			}
			served = patched
		}
		b.access(w, r, served)
	})
}

// UIOption configures ServeUI.
type UIOption func(*uiConfig)

type uiConfig struct {
	title   string
	specURL string
}

// WithUITitle sets the page title for the docs UI.
func WithUITitle(title string) UIOption {
	return func(c *uiConfig) {
		c.title = title
	}
}

// ServeUI registers an interactive documentation page at path. It
// renders Stoplight Elements pointing at the docs route of basePath.
func (b *Binder) ServeUI(path, basePath string, opts ...UIOption) {
	cfg := &uiConfig{
		title:   "API Documentation",
		specURL: basePath + b.docsPath,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tmpl := template.Must(template.New("docs").Parse(docsHTML))

	b.router.Handle(http.MethodGet, path, b.wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		tmpl.Execute(w, cfg)
	})))
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`

// Title returns the UI config title (used in the template).
func (c *uiConfig) Title() string { return c.title }

// SpecURL returns the UI config spec URL (used in the template).
func (c *uiConfig) SpecURL() string { return c.specURL }
