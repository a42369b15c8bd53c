package endpoint

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error is an error with HTTP mapping: a status code, a public label, a
// client-safe message, and optional response headers. Anything the client
// should never see (the causal error, attached metadata) rides along
// separately and is only surfaced through logging.
//
// Handlers return an *Error (directly or wrapped with fmt.Errorf and %w) to
// control the response; any other error becomes a generic 500.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int

	// Kind is the public error label, e.g. "Method Not Allowed". Defaults
	// to http.StatusText(Status) when empty.
	Kind string

	// Message is the client-safe message sent in the response body.
	Message string

	// Headers are copied verbatim onto the error response, e.g.
	// WWW-Authenticate on a 401.
	Headers http.Header

	// Meta holds arbitrary attached metadata. Never sent to the client.
	Meta map[string]any

	cause error
}

// NewError creates an Error with the given status and client-safe message.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Kind: http.StatusText(status), Message: message}
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the causal error for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Server reports whether this is a server-class (5xx) error.
func (e *Error) Server() bool { return e.Status >= 500 }

// Payload is the client-visible JSON body of an error response.
type Payload struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Payload returns the JSON body sent to the client for this error.
func (e *Error) Payload() Payload {
	kind := e.Kind
	if kind == "" {
		kind = http.StatusText(e.Status)
	}
	return Payload{StatusCode: e.Status, Error: kind, Message: e.Message}
}

// WithHeader sets a response header on the error and returns it for
// chaining.
func (e *Error) WithHeader(key, value string) *Error {
	if e.Headers == nil {
		e.Headers = http.Header{}
	}
	e.Headers.Set(key, value)
	return e
}

// WithMeta attaches metadata to the error and returns it for chaining.
// Metadata is never sent to the client.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

// WithCause attaches the causal error, retained for diagnostic logging but
// never exposed in the response.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// BadRequest creates a 400 error. The message should name the offending
// input; 4xx messages are meant to be specific and actionable.
func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// MethodNotAllowed creates a 405 error.
func MethodNotAllowed(message string) *Error {
	return NewError(http.StatusMethodNotAllowed, message)
}

// stackTracer matches causes that already carry a pkg/errors stack.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Internal creates a 500 error around cause. The client sees only the
// generic message; the cause keeps its stack (capturing one here if it has
// none) so the default error logger can surface it.
func Internal(cause error) *Error {
	e := NewError(http.StatusInternalServerError, "An internal server error occurred")
	if cause != nil {
		if _, ok := cause.(stackTracer); !ok {
			cause = pkgerrors.WithStack(cause)
		}
		e.cause = cause
	}
	return e
}

// Wrap returns err unchanged when it already carries HTTP mapping, and
// converts anything else into an internal server error. The check is a
// capability check via errors.As, so wrapped *Errors pass through too.
func Wrap(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Errorf creates an Error with a formatted message.
func Errorf(status int, format string, args ...any) *Error {
	return NewError(status, fmt.Sprintf(format, args...))
}
