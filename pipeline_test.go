package bind_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

func newTestDoc() (*bind.Document, *bind.OperationDoc) {
	def := &bind.OperationDoc{
		OperationID: "getPet",
		Responses:   map[string]bind.ResponseDoc{"200": {Description: "ok"}},
	}
	doc := &bind.Document{
		OpenAPI: "3.0.0",
		Info:    bind.Info{Title: "Test", Version: "1.0.0"},
		Paths:   map[string]bind.PathItem{"/pets/{petId}": {"get": def}},
	}
	return doc, def
}

func TestPipeline_step_order(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(name string) bind.Step {
		return func(_ http.ResponseWriter, _ *http.Request) (*http.Request, error) {
			order = append(order, name)
			return nil, nil
		}
	}

	mux := bind.NewMux()
	b, err := bind.New(mux,
		bind.WithConsumesStep("application/json", record("json")),
		bind.WithConsumesStep("application/xml", record("xml")),
	)
	require.NoError(t, err)

	doc, def := newTestDoc()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")

		// Document attachment ran first and is visible here.
		info, ok := bind.OperationFromContext(r.Context())
		assert.True(t, ok)
		assert.Same(t, doc, info.Document)
		assert.Same(t, def, info.Operation)

		// The response-validation capability is installed, not invoked.
		check, ok := bind.ResponseCheckFromContext(r.Context())
		assert.True(t, ok)
		assert.NoError(t, check(http.StatusOK, "body"))

		w.WriteHeader(http.StatusOK)
	})

	err = b.BindOperation(bind.Operation{
		Method:          http.MethodGet,
		Path:            "/pets/{petId}",
		Doc:             doc,
		Def:             def,
		Handler:         handler,
		FeaturesEnabled: true,
		Consumes:        []string{"application/json", "application/xml"},
		Steps:           []bind.Step{record("extra")},
		Features: bind.FeatureSet{
			ResponseValidator: bind.ResponseValidatorFunc(func(_ int, _ any) error { return nil }),
			RequestValidator: bind.RequestValidatorFunc(func(_ *http.Request) error {
				order = append(order, "validate")
				return nil
			}),
			Coercer: bind.CoercerFunc(func(_ *http.Request) *http.Request {
				order = append(order, "coerce")
				return nil
			}),
			DefaultSetter: bind.DefaultSetterFunc(func(_ *http.Request) *http.Request {
				order = append(order, "default")
				return nil
			}),
			Security: bind.SecurityHandlerFunc(func(_ *http.Request) error {
				order = append(order, "security")
				return nil
			}),
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"extra", "validate", "coerce", "default", "json", "xml", "security", "handler"}, order)
}

func TestPipeline_validation_failure_short_circuits(t *testing.T) {
	t.Parallel()

	var coerced, defaulted, secured, handled int

	mux := bind.NewMux()
	b, err := bind.New(mux)
	require.NoError(t, err)

	doc, def := newTestDoc()
	problem := &bind.ProblemDetail{
		Title:  "invalid parameter",
		Status: http.StatusBadRequest,
		Errors: []bind.ValidationError{{Field: "petId", Message: "must be an integer", Value: "abc"}},
	}

	err = b.BindOperation(bind.Operation{
		Method:          http.MethodGet,
		Path:            "/pets/{petId}",
		Doc:             doc,
		Def:             def,
		FeaturesEnabled: true,
		Handler: http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handled++
		}),
		Features: bind.FeatureSet{
			RequestValidator: bind.RequestValidatorFunc(func(_ *http.Request) error {
				return problem
			}),
			Coercer: bind.CoercerFunc(func(_ *http.Request) *http.Request {
				coerced++
				return nil
			}),
			DefaultSetter: bind.DefaultSetterFunc(func(_ *http.Request) *http.Request {
				defaulted++
				return nil
			}),
			Security: bind.SecurityHandlerFunc(func(_ *http.Request) error {
				secured++
				return nil
			}),
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"petId"`)

	assert.Zero(t, coerced, "coercer must not run after a validation failure")
	assert.Zero(t, defaulted, "default setter must not run after a validation failure")
	assert.Zero(t, secured, "security must not run after a validation failure")
	assert.Zero(t, handled, "handler must not run after a validation failure")
}

func TestPipeline_security_rejection(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		reject     *bind.SecurityError
		wantHeader string
	}{
		"with challenge": {
			reject: &bind.SecurityError{
				Status:    http.StatusUnauthorized,
				Message:   "missing token",
				Challenge: `Bearer realm="pets"`,
			},
			wantHeader: `Bearer realm="pets"`,
		},
		"without challenge": {
			reject: &bind.SecurityError{
				Status:  http.StatusForbidden,
				Message: "not allowed",
			},
			wantHeader: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mux := bind.NewMux()
			b, err := bind.New(mux)
			require.NoError(t, err)

			doc, def := newTestDoc()
			var handled int

			err = b.BindOperation(bind.Operation{
				Method:          http.MethodGet,
				Path:            "/pets/{petId}",
				Doc:             doc,
				Def:             def,
				FeaturesEnabled: true,
				Handler: http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
					handled++
				}),
				Features: bind.FeatureSet{
					Security: bind.SecurityHandlerFunc(func(_ *http.Request) error {
						return tc.reject
					}),
				},
			})
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/1", nil))

			assert.Equal(t, tc.reject.Status, rec.Code)
			assert.Equal(t, tc.wantHeader, rec.Header().Get("WWW-Authenticate"))
			assert.Contains(t, rec.Body.String(), tc.reject.Message)
			assert.Zero(t, handled)
		})
	}
}

func TestPipeline_features_disabled(t *testing.T) {
	t.Parallel()

	var validated, extra, handled int

	mux := bind.NewMux()
	b, err := bind.New(mux)
	require.NoError(t, err)

	doc, def := newTestDoc()

	err = b.BindOperation(bind.Operation{
		Method: http.MethodGet,
		Path:   "/pets/{petId}",
		Doc:    doc,
		Def:    def,
		// FeaturesEnabled deliberately false: the validator below must never run.
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handled++
			_, ok := bind.OperationFromContext(r.Context())
			assert.False(t, ok, "no document attachment without features")
			w.WriteHeader(http.StatusOK)
		}),
		Features: bind.FeatureSet{
			RequestValidator: bind.RequestValidatorFunc(func(_ *http.Request) error {
				validated++
				return bind.Error(http.StatusBadRequest, "should not run")
			}),
		},
		Steps: []bind.Step{
			func(_ http.ResponseWriter, _ *http.Request) (*http.Request, error) {
				extra++
				return nil, nil
			},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, extra)
	assert.Equal(t, 1, handled)
	assert.Zero(t, validated)
}

func TestPipeline_no_operation_document(t *testing.T) {
	t.Parallel()

	var validated, handled int

	mux := bind.NewMux()
	b, err := bind.New(mux)
	require.NoError(t, err)

	err = b.BindOperation(bind.Operation{
		Method:          http.MethodGet,
		Path:            "/ping",
		FeaturesEnabled: true,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handled++
			w.WriteHeader(http.StatusNoContent)
		}),
		Features: bind.FeatureSet{
			RequestValidator: bind.RequestValidatorFunc(func(_ *http.Request) error {
				validated++
				return nil
			}),
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, handled)
	assert.Zero(t, validated, "no feature steps without an operation document")
}

func TestPipeline_step_abort(t *testing.T) {
	t.Parallel()

	var handled int

	mux := bind.NewMux()
	b, err := bind.New(mux)
	require.NoError(t, err)

	err = b.BindOperation(bind.Operation{
		Method: http.MethodGet,
		Path:   "/teapot",
		Handler: http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handled++
		}),
		Steps: []bind.Step{
			func(w http.ResponseWriter, _ *http.Request) (*http.Request, error) {
				w.WriteHeader(http.StatusTeapot)
				return nil, bind.ErrAbort
			},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Body.String(), "ErrAbort must not invoke the error handler")
	assert.Zero(t, handled)
}

func TestPipeline_request_replacement_flows_forward(t *testing.T) {
	t.Parallel()

	type stamp struct{ value string }

	mux := bind.NewMux()
	b, err := bind.New(mux)
	require.NoError(t, err)

	err = b.BindOperation(bind.Operation{
		Method: http.MethodGet,
		Path:   "/stamped",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := bind.GetValue[stamp](r.Context())
			assert.True(t, ok)
			assert.Equal(t, "coerced", s.value)
			w.WriteHeader(http.StatusOK)
		}),
		Steps: []bind.Step{
			func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
				return bind.SetValue(r, stamp{value: "coerced"}), nil
			},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stamped", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
