package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Handler processes a request and returns a JSON-serializable value, or an
// error to be translated into a structured error response. Returning
// (nil, nil) produces a literal JSON null body. A handler may instead write
// the response itself, in which case the dispatcher leaves it alone.
type Handler func(w http.ResponseWriter, r *http.Request) (any, error)

// Methods maps an uppercase HTTP method name to its handler. Requests for
// methods without an entry are rejected with a 405. A nil map rejects
// everything.
//
// Example:
//
//	endpoint.Handle(endpoint.Methods{
//	    http.MethodGet:  getUser,
//	    http.MethodPost: createUser,
//	})
type Methods map[string]Handler

// Handle builds an http.Handler that dispatches by request method.
//
// The dispatch flow per request:
//  1. Look up the handler for the request method; 405 when absent.
//  2. Invoke the handler.
//  3. If the handler committed the response itself, leave it alone. A
//     handler that committed the response and returned a value anyway is
//     reported through the error logger; the response stays as sent.
//  4. Otherwise encode the return value as the JSON body (literal null for
//     a nil value), keeping whatever status the handler set.
//  5. On any failure, wrap it into a structured error, call the logError
//     hook, then the sendError hook. Nothing propagates past this point:
//     every request gets exactly one response.
func Handle(methods Methods, opts ...Option) http.Handler {
	o := options{sendError: defaultSendError, logError: defaultLogError}
	for _, opt := range opts {
		opt(&o)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		h, ok := methods[r.Method]
		if !ok {
			o.fail(rw, MethodNotAllowed(fmt.Sprintf("Method %s is not supported for this endpoint", r.Method)))
			return
		}

		v, err := h(rw, r)
		if err != nil {
			o.fail(rw, Wrap(err))
			return
		}

		if rw.committed {
			if v != nil {
				o.logError(Internal(fmt.Errorf("handler for %s %s wrote the response and returned a value", r.Method, r.URL.Path)))
			}
			return
		}

		rw.Header().Set("Content-Type", "application/json; charset=utf-8")
		if v == nil {
			_, _ = rw.Write([]byte("null"))
			return
		}

		body, merr := json.Marshal(v)
		if merr != nil {
			o.fail(rw, Wrap(merr))
			return
		}
		_, _ = rw.Write(body)
	})
}

// fail routes a structured error through the logging and sending hooks.
// A response the handler already committed is never rewritten.
func (o *options) fail(w *responseWriter, err *Error) {
	o.logError(err)
	if w.committed {
		return
	}
	o.sendError(w, err)
}
