package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrAbort signals that a step has fully written its own response and
// the rest of the pipeline should stop without involving the error
// handler.
var ErrAbort = errors.New("bind: pipeline aborted")

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ProblemDetail is an RFC 9457 problem details response. Request
// validators return it to carry a status code and structured failure
// payload through the pipeline to the error handler verbatim.
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Type     string            `json:"type,omitempty"`
	Title    string            `json:"title,omitempty"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// ValidationError describes a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// SecurityError is a security-step rejection. Challenge, when set, is
// surfaced as the WWW-Authenticate response header before the status
// and message body are written.
type SecurityError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Challenge string `json:"-"`
}

// Error returns the rejection message.
func (e *SecurityError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *SecurityError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement
// StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders a step failure. The Binder never logs or
// swallows errors itself; whatever a step raises arrives here intact.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler writes err as a machine-readable JSON response:
// security rejections keep their own shape (and set their challenge
// header), everything else becomes an RFC 9457 problem details body.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeErrorResponse(w, err)
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	var se *SecurityError
	if errors.As(err, &se) {
		if se.Challenge != "" {
			w.Header().Set("WWW-Authenticate", se.Challenge)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(se.Status)
		//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(se)
		return
	}

	// If the error is already a ProblemDetail, use it directly.
	var pd *ProblemDetail
	if errors.As(err, &pd) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(pd.Status)
		//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(pd)
		return
	}

	// Convert any error into a ProblemDetail.
	status := ErrorStatus(err)
	problem := &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: err.Error(),
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(problem)
}
