package bind

import "net/http"

// RequestValidator eagerly validates an incoming request (body,
// headers, path parameters, query) against the operation's declared
// schema. A non-nil error aborts the pipeline; return a *ProblemDetail
// (or any error implementing StatusCoder) to carry the status code and
// structured payload through to the error handler verbatim.
type RequestValidator interface {
	ValidateRequest(r *http.Request) error
}

// ResponseValidator checks a candidate response body against the
// operation's declared response schema for the given status code. The
// pipeline never invokes it eagerly; it installs the capability on the
// request context for the terminal handler to call; see
// ResponseCheckFromContext.
type ResponseValidator interface {
	ValidateResponse(status int, body any) error
}

// Coercer converts the typed fields of an incoming request (string
// path parameters to numbers and so on) per the declared schema. It
// has no failure path: coercion problems are the request validator's
// to report, and the validator runs first. A nil return leaves the
// request unchanged.
type Coercer interface {
	Coerce(r *http.Request) *http.Request
}

// DefaultSetter fills in declared default values for absent optional
// fields. A nil return leaves the request unchanged.
type DefaultSetter interface {
	ApplyDefaults(r *http.Request) *http.Request
}

// SecurityHandler authenticates and authorizes a request. Return nil
// to let the pipeline proceed, or a *SecurityError to reject with a
// status, message, and optional WWW-Authenticate challenge. Blocking
// checks should honor r.Context().
type SecurityHandler interface {
	Authorize(r *http.Request) error
}

// FeatureSet holds the optional per-operation capability objects. A
// nil field means the corresponding pipeline step is omitted entirely;
// no placeholder runs in its place.
type FeatureSet struct {
	ResponseValidator ResponseValidator
	RequestValidator  RequestValidator
	Coercer           Coercer
	DefaultSetter     DefaultSetter
	Security          SecurityHandler
}

// RequestValidatorFunc adapts a function to RequestValidator.
type RequestValidatorFunc func(r *http.Request) error

// ValidateRequest calls f.
func (f RequestValidatorFunc) ValidateRequest(r *http.Request) error { return f(r) }

// ResponseValidatorFunc adapts a function to ResponseValidator.
type ResponseValidatorFunc func(status int, body any) error

// ValidateResponse calls f.
func (f ResponseValidatorFunc) ValidateResponse(status int, body any) error {
	return f(status, body)
}

// CoercerFunc adapts a function to Coercer.
type CoercerFunc func(r *http.Request) *http.Request

// Coerce calls f.
func (f CoercerFunc) Coerce(r *http.Request) *http.Request { return f(r) }

// DefaultSetterFunc adapts a function to DefaultSetter.
type DefaultSetterFunc func(r *http.Request) *http.Request

// ApplyDefaults calls f.
func (f DefaultSetterFunc) ApplyDefaults(r *http.Request) *http.Request { return f(r) }

// SecurityHandlerFunc adapts a function to SecurityHandler.
type SecurityHandlerFunc func(r *http.Request) error

// Authorize calls f.
func (f SecurityHandlerFunc) Authorize(r *http.Request) error { return f(r) }
