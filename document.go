package bind

// Document is a compiled API description. To the Binder it is data,
// not behavior: it is never parsed or validated here, only attached to
// requests and served from the docs route. Both OpenAPI 3.x and legacy
// Swagger 2.0 shapes are carried; legacy documents get their host and
// basePath patched from the live request when served.
type Document struct {
	OpenAPI  string   `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Swagger  string   `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	Info     Info     `json:"info" yaml:"info"`
	Host     string   `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath string   `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	Paths map[string]PathItem `json:"paths" yaml:"paths"`

	SecurityDefinitions map[string]SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`
	Security            []map[string][]string     `json:"security,omitempty" yaml:"security,omitempty"`
}

// Info holds API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operation documents.
type PathItem map[string]*OperationDoc

// OperationDoc is one operation's entry in the document.
type OperationDoc struct {
	OperationID string                 `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                 `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Consumes    []string               `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string               `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters  []Parameter            `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]ResponseDoc `json:"responses,omitempty" yaml:"responses,omitempty"`
	Security    []map[string][]string  `json:"security,omitempty" yaml:"security,omitempty"`
	Deprecated  bool                   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name     string         `json:"name" yaml:"name"`
	In       string         `json:"in" yaml:"in"`
	Required bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Default  any            `json:"default,omitempty" yaml:"default,omitempty"`
	Schema   map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResponseDoc describes a single declared response.
type ResponseDoc struct {
	Description string         `json:"description" yaml:"description"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// SecurityScheme describes a named security scheme.
type SecurityScheme struct {
	Type   string `json:"type" yaml:"type"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	In     string `json:"in,omitempty" yaml:"in,omitempty"`
}

// Legacy reports whether the document is a Swagger 2.0 description.
func (d *Document) Legacy() bool { return d.Swagger != "" }

// Clone returns a shallow copy. The docs route patches top-level
// fields on the copy; the shared path and operation entries stay
// untouched.
func (d *Document) Clone() *Document {
	out := *d
	return &out
}
