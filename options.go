package endpoint

import (
	"encoding/json"
	"net/http"
	"os"

	pkgstack "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// SendErrorFunc writes a structured error to the response. The default
// copies the error's headers, sets its status, and writes its payload as
// the JSON body.
type SendErrorFunc func(w http.ResponseWriter, err *Error)

// LogErrorFunc records a structured error for operational visibility. The
// default stays quiet for client-class errors and logs server-class errors
// with the cause's stack.
type LogErrorFunc func(err *Error)

type options struct {
	sendError SendErrorFunc
	logError  LogErrorFunc
}

// Option configures a dispatcher built with Handle.
type Option func(*options)

// WithSendError replaces the default error response writer.
//
// Example:
//
//	endpoint.Handle(methods, endpoint.WithSendError(func(w http.ResponseWriter, err *endpoint.Error) {
//	    http.Error(w, err.Message, err.Status)
//	}))
func WithSendError(fn SendErrorFunc) Option {
	return func(o *options) {
		o.sendError = fn
	}
}

// WithLogError replaces the default error logger.
//
// Example:
//
//	endpoint.Handle(methods, endpoint.WithLogError(func(err *endpoint.Error) {
//	    metrics.Incr("endpoint.error", "status:"+strconv.Itoa(err.Status))
//	}))
func WithLogError(fn LogErrorFunc) Option {
	return func(o *options) {
		o.logError = fn
	}
}

// errorLogger is the diagnostic sink for defaultLogError. Package-level so
// tests can capture output.
var errorLogger = func() zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}()

func defaultSendError(w http.ResponseWriter, err *Error) {
	h := w.Header()
	for key, values := range err.Headers {
		for _, v := range values {
			h.Add(key, v)
		}
	}
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.Status)
	body, merr := json.Marshal(err.Payload())
	if merr != nil {
		return
	}
	_, _ = w.Write(body)
}

// defaultLogError logs server-class errors only; 4xx responses are routine
// and not operationally actionable. The cause's stack is preferred over the
// wrapper's generic message.
func defaultLogError(err *Error) {
	if !err.Server() {
		return
	}
	cause := err.Unwrap()
	if cause == nil {
		cause = pkgstack.WithStack(err)
	}
	errorLogger.Error().
		Stack().
		Err(cause).
		Int("status", err.Status).
		Msg(err.Message)
}
