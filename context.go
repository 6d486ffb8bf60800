package bind

import (
	"context"
	"net/http"
)

type contextKey[T any] struct{}

// SetValue stores a typed value on the request context. For use in steps.
func SetValue[T any](r *http.Request, val T) *http.Request {
	ctx := context.WithValue(r.Context(), contextKey[T]{}, val)
	return r.WithContext(ctx)
}

// GetValue retrieves a typed value from the request context.
func GetValue[T any](ctx context.Context) (T, bool) {
	val, ok := ctx.Value(contextKey[T]{}).(T)
	return val, ok
}

// OperationInfo is the document pair the pipeline attaches to each
// request of a feature-enabled operation: the API root's document plus
// this operation's own entry in it. Both are shared and immutable.
type OperationInfo struct {
	Document  *Document
	Operation *OperationDoc
}

// OperationFromContext returns the documents attached by the pipeline,
// if any. Downstream steps and terminal handlers use it to read the
// declared metadata for the operation they are serving.
func OperationFromContext(ctx context.Context) (OperationInfo, bool) {
	return GetValue[OperationInfo](ctx)
}

// ResponseCheck validates a candidate response body for a status code.
type ResponseCheck func(status int, body any) error

// ResponseCheckFromContext returns the response validation capability
// installed by the pipeline. Terminal handlers call it on bodies they
// want checked before writing; the pipeline itself never calls it.
func ResponseCheckFromContext(ctx context.Context) (ResponseCheck, bool) {
	return GetValue[ResponseCheck](ctx)
}
