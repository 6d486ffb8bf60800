package bind

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// DefaultDocsPath is where each API root's document is served,
// relative to its base path.
const DefaultDocsPath = "/api-docs"

// AccessFilter writes the docs-route response. It receives the
// document after any host/basePath patching and owns the response
// entirely; use it to gate who may read the description.
type AccessFilter func(w http.ResponseWriter, r *http.Request, doc *Document)

// Binder compiles operation descriptors into pipelines and registers
// them on a Router. Configure it once at startup; the Bind methods are
// safe for concurrent use, though registration is normally a
// single-threaded startup walk.
type Binder struct {
	router     Router
	translate  func(template string) string
	consumes   map[string]Step
	errHandler ErrorHandler
	access     AccessFilter
	middleware []Middleware
	exposeDocs bool
	docsPath   string

	mu    sync.Mutex
	bound map[string]bool // "METHOD path" already registered
	docs  map[string]bool // base paths with a docs route
}

// Option configures a Binder.
type Option func(*Binder)

// WithConsumesStep maps a MIME type to the step inserted for
// operations declaring it in their consumes list.
func WithConsumesStep(mime string, s Step) Option {
	return func(b *Binder) {
		if b.consumes == nil {
			b.consumes = make(map[string]Step)
		}
		b.consumes[mime] = s
	}
}

// WithErrorHandler sets the renderer for step failures. Default:
// DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Binder) {
		b.errHandler = h
	}
}

// WithAccessFilter sets the docs-route response writer. Default:
// DefaultAccessFilter.
func WithAccessFilter(f AccessFilter) Option {
	return func(b *Binder) {
		b.access = f
	}
}

// WithMiddleware wraps every handler the Binder registers, docs route
// included, with mw in order (first listed is outermost).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *Binder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithDocsPath overrides DefaultDocsPath.
func WithDocsPath(path string) Option {
	return func(b *Binder) {
		b.docsPath = path
	}
}

// WithoutDocs disables the document route entirely.
func WithoutDocs() Option {
	return func(b *Binder) {
		b.exposeDocs = false
	}
}

// WithTranslator overrides path translation for the bound router. It
// takes precedence over both TranslatePath and a router's own
// Translate method.
func WithTranslator(t func(template string) string) Option {
	return func(b *Binder) {
		b.translate = t
	}
}

// New returns a Binder registering on router. Configuration problems
// are setup errors and fail here, before anything is registered.
func New(router Router, opts ...Option) (*Binder, error) {
	if router == nil {
		return nil, errors.New("bind: nil router")
	}

	b := &Binder{
		router:     router,
		translate:  TranslatePath,
		errHandler: DefaultErrorHandler,
		access:     DefaultAccessFilter,
		exposeDocs: true,
		docsPath:   DefaultDocsPath,
		bound:      make(map[string]bool),
		docs:       make(map[string]bool),
	}
	if t, ok := router.(Translator); ok {
		b.translate = t.Translate
	}
	for _, opt := range opts {
		opt(b)
	}

	if !strings.HasPrefix(b.docsPath, "/") {
		return nil, fmt.Errorf("bind: docs path %q must start with a slash", b.docsPath)
	}
	if b.errHandler == nil {
		return nil, errors.New("bind: nil error handler")
	}
	if b.access == nil {
		return nil, errors.New("bind: nil access filter")
	}
	return b, nil
}

// BindOperation compiles op's pipeline and registers it under op's
// method and translated path. Each method+path pair binds exactly
// once; a second registration is a setup error.
func (b *Binder) BindOperation(op Operation) error {
	if err := op.validate(); err != nil {
		return err
	}

	path := b.translate(op.BasePath + op.Path)

	b.mu.Lock()
	key := op.Method + " " + path
	if b.bound[key] {
		b.mu.Unlock()
		return fmt.Errorf("bind: %s already bound", key)
	}
	b.bound[key] = true
	b.mu.Unlock()

	p := &pipeline{
		steps:   b.buildSteps(op),
		handler: op.Handler,
		onError: b.errHandler,
	}
	b.router.Handle(op.Method, path, b.wrap(p))
	return nil
}

// BindDocs registers the document route for one API root at
// {basePath}{docsPath}, unless docs exposure is disabled. At most one
// docs route exists per base path; repeat calls are no-ops.
func (b *Binder) BindDocs(doc *Document, basePath string) error {
	if doc == nil {
		return errors.New("bind: nil document")
	}
	if !b.exposeDocs {
		return nil
	}

	b.mu.Lock()
	if b.docs[basePath] {
		b.mu.Unlock()
		return nil
	}
	b.docs[basePath] = true
	b.mu.Unlock()

	path := b.translate(basePath + b.docsPath)
	b.router.Handle(http.MethodGet, path, b.wrap(b.docsHandler(doc, basePath)))
	return nil
}

// OperationResolver supplies the handler, features, and extra steps
// for one declared operation during a Bind walk. Returning false skips
// the operation.
type OperationResolver func(method, path string, def *OperationDoc) (Operation, bool)

// Bind walks doc once: the docs route first, then every operation with
// a non-empty operation document, in deterministic path order. The
// walk fills in Method, Path, BasePath, Doc, and Def on whatever the
// resolver returns.
func (b *Binder) Bind(doc *Document, basePath string, resolve OperationResolver) error {
	if err := b.BindDocs(doc, basePath); err != nil {
		return err
	}

	for _, tmpl := range slices.Sorted(maps.Keys(doc.Paths)) {
		item := doc.Paths[tmpl]
		for _, method := range Methods {
			def := item[strings.ToLower(method)]
			if def == nil {
				continue
			}
			op, ok := resolve(method, tmpl, def)
			if !ok {
				continue
			}
			op.Method = method
			op.Path = tmpl
			op.BasePath = basePath
			op.Doc = doc
			op.Def = def
			if err := b.BindOperation(op); err != nil {
				return err
			}
		}
	}
	return nil
}

// wrap applies the Binder's middleware chain around h.
func (b *Binder) wrap(h http.Handler) http.Handler {
	for i := len(b.middleware) - 1; i >= 0; i-- {
		h = b.middleware[i](h)
	}
	return h
}
