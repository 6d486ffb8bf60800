package bind

import (
	"errors"
	"net/http"
)

// Step is one unit of an operation's request-processing chain. A step
// may replace the request (to attach context values) by returning a
// non-nil *http.Request, and aborts the chain by returning a non-nil
// error: ErrAbort stops silently after the step has written its own
// response, anything else goes to the Binder's error handler.
// Returning (nil, nil) advances with the request unchanged.
type Step func(w http.ResponseWriter, r *http.Request) (*http.Request, error)

// pipeline is the compiled, immutable step sequence for one operation.
// Built once at registration, invoked once per request. It holds no
// per-request state, so a single pipeline serves any number of
// concurrent requests.
type pipeline struct {
	steps   []Step
	handler http.Handler
	onError ErrorHandler
}

// ServeHTTP runs the steps strictly in order, then the terminal
// handler. The first failing step ends the request: nothing after it
// runs, the terminal handler included. The executor adds no steps and
// translates no errors of its own.
func (p *pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, step := range p.steps {
		next, err := step(w, r)
		if err != nil {
			if !errors.Is(err, ErrAbort) {
				p.onError(w, r, err)
			}
			return
		}
		if next != nil {
			r = next
		}
	}
	p.handler.ServeHTTP(w, r)
}

// buildSteps assembles op's step sequence in its fixed order:
// descriptor steps first, then (for feature-enabled operations with an
// operation document) document attachment, response-validator install,
// request validation, coercion, defaults, consumes middleware in
// declared order, and security. Absent features contribute nothing.
func (b *Binder) buildSteps(op Operation) []Step {
	steps := make([]Step, 0, len(op.Steps)+7)
	steps = append(steps, op.Steps...)

	if !op.FeaturesEnabled || op.Def == nil {
		return steps
	}

	info := OperationInfo{Document: op.Doc, Operation: op.Def}
	steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
		return SetValue(r, info), nil
	})

	if rv := op.Features.ResponseValidator; rv != nil {
		check := ResponseCheck(rv.ValidateResponse)
		steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			return SetValue(r, check), nil
		})
	}

	if v := op.Features.RequestValidator; v != nil {
		steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			return nil, v.ValidateRequest(r)
		})
	}

	// Coercion runs after validation on purpose: the validator sees the
	// raw request, and coercion results are not re-validated.
	if c := op.Features.Coercer; c != nil {
		steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			return c.Coerce(r), nil
		})
	}

	if ds := op.Features.DefaultSetter; ds != nil {
		steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			return ds.ApplyDefaults(r), nil
		})
	}

	for _, mime := range op.consumes() {
		if s, ok := b.consumes[mime]; ok {
			steps = append(steps, s)
		}
	}

	if sec := op.Features.Security; sec != nil {
		steps = append(steps, func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
			return nil, sec.Authorize(r)
		})
	}

	return steps
}
