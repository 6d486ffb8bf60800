// Package bind mounts a declarative API description onto an HTTP router.
//
// The description (a compiled OpenAPI or legacy Swagger document plus
// per-operation feature objects supplied by an external validation and
// security subsystem) flows in; one registered router handler per
// operation flows out. For each operation the Binder compiles a fixed,
// ordered pipeline of steps (document attachment, response-validator
// install, request validation, coercion, default application,
// content-type middleware, security) ending in the operation's own
// handler, and registers the compiled pipeline under the operation's
// method and translated path:
//
//	b, err := bind.New(bind.NewMux())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = b.BindOperation(bind.Operation{
//	    Method:          http.MethodGet,
//	    Path:            "/pets/{petId}",
//	    Doc:             doc,
//	    Def:             doc.Paths["/pets/{petId}"]["get"],
//	    Handler:         getPet,
//	    FeaturesEnabled: true,
//	    Features:        bind.FeatureSet{RequestValidator: validator},
//	})
//
// Steps run strictly in order and short-circuit on failure: a request
// that fails validation or security never reaches later steps or the
// handler. Failures route to a configurable ErrorHandler, which
// renders them as RFC 9457 problem details by default.
//
// Path templates use brace parameters. They are rewritten to the bound
// router's native syntax: leading-colon by default, or whatever the
// router's own Translate method says. Adapters for chi, gin, and echo
// live in the chibind, ginbind, and echobind subpackages.
//
// Each API root may also expose its document at {basePath}/api-docs,
// gated by a pluggable access filter.
package bind
