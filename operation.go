package bind

import (
	"fmt"
	"net/http"
	"slices"
)

// Methods is the verb set operations may declare.
var Methods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
}

// Operation describes one declared method+path to bind. Descriptors
// are consumed at registration time; the compiled pipeline, not the
// descriptor, is what persists.
type Operation struct {
	// Method is the HTTP verb, one of Methods.
	Method string

	// Path is the operation's path template with {name} parameters,
	// relative to BasePath.
	Path string

	// BasePath is the API root prefix the path is mounted under.
	BasePath string

	// Doc is the API document shared by all operations of one root.
	Doc *Document

	// Def is this operation's entry in the document. Without it no
	// feature steps run.
	Def *OperationDoc

	// Handler is the terminal handler, always present, always last.
	Handler http.Handler

	// FeaturesEnabled gates every step derived from Features and Def.
	// When false, only Steps and Handler run.
	FeaturesEnabled bool

	// Features holds the optional capability objects.
	Features FeatureSet

	// Consumes overrides the MIME types the operation accepts. Empty
	// means Def.Consumes, falling back to the document-level list.
	Consumes []string

	// Steps run before everything else in the pipeline, in order.
	Steps []Step
}

// consumes resolves the operation's effective MIME type list.
func (op Operation) consumes() []string {
	switch {
	case len(op.Consumes) > 0:
		return op.Consumes
	case op.Def != nil && len(op.Def.Consumes) > 0:
		return op.Def.Consumes
	case op.Doc != nil:
		return op.Doc.Consumes
	default:
		return nil
	}
}

// validate reports descriptor problems. These are setup errors: they
// fail registration synchronously, before any route exists.
func (op Operation) validate() error {
	if op.Handler == nil {
		return fmt.Errorf("bind: operation %s %s: nil handler", op.Method, op.Path)
	}
	if !slices.Contains(Methods, op.Method) {
		return fmt.Errorf("bind: operation %s %s: unsupported method", op.Method, op.Path)
	}
	return nil
}
