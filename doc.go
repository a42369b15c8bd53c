// Package endpoint adapts plain value-returning handlers into net/http
// endpoints with method dispatch, JSON serialization, and structured error
// responses.
//
// Handlers return a value instead of writing the response. The dispatcher
// serializes the value as JSON, and turns any returned error into a
// well-formed JSON error response, so handler code is business logic rather
// than response plumbing.
//
// # Quick Start
//
// Map HTTP methods to handlers and mount the result anywhere an
// http.Handler goes:
//
//	h := endpoint.Handle(endpoint.Methods{
//	    http.MethodGet: func(w http.ResponseWriter, r *http.Request) (any, error) {
//	        user, err := store.Get(r.Context(), r.URL.Query().Get("id"))
//	        if err != nil {
//	            return nil, endpoint.NotFound("no such user")
//	        }
//	        return user, nil
//	    },
//	})
//
//	mux.Handle("/api/user", h)
//
// Requests for unmapped methods get a 405. A nil return produces a literal
// JSON null body. Errors become JSON bodies shaped as:
//
//	{"statusCode": 404, "error": "Not Found", "message": "no such user"}
//
// # Error Handling
//
// Handlers control the response by returning an *Error, built with NewError
// or the status helpers (BadRequest, Forbidden, NotFound, ...). Its status,
// message, and headers reach the client verbatim:
//
//	return nil, endpoint.Unauthorized("token expired").
//	    WithHeader("WWW-Authenticate", "Bearer")
//
// Any other error is coerced to a generic 500: the client sees only
// "An internal server error occurred", while the original error is kept as
// the cause for logging. By default only server-class (5xx) errors are
// logged, with the cause's stack trace; 4xx responses are routine and stay
// quiet. Both behaviors are replaceable per endpoint:
//
//	endpoint.Handle(methods,
//	    endpoint.WithLogError(func(err *endpoint.Error) { ... }),
//	    endpoint.WithSendError(func(w http.ResponseWriter, err *endpoint.Error) { ... }),
//	)
//
// # Validation
//
// Validate wraps a handler with declarative rules for the request's query,
// body, and headers. Rules are go-playground/validator tag expressions;
// failures become 400s naming the offending field:
//
//	h := endpoint.Validate(endpoint.Schemas{
//	    Query: endpoint.Schema{
//	        "limit": {Rules: "numeric", Default: "20"},
//	    },
//	    Body: endpoint.Schema{
//	        "email": {Rules: "required,email", Trim: true},
//	    },
//	})(createUser)
//
// Validation also normalizes: trimmed and defaulted values are written back
// onto the request, so the wrapped handler reads the normalized input.
// Fields not named by a schema pass through untouched.
//
// For typed request bodies, Bind unmarshals JSON into a struct and runs its
// Validate method when it has one:
//
//	endpoint.Bind(func(w http.ResponseWriter, r *http.Request, body CreateUser) (any, error) {
//	    return users.Create(r.Context(), body)
//	})
//
// # Escape Hatch
//
// A handler may write the response itself (streaming, redirects, anything
// non-JSON). Once the handler has written, the dispatcher stays out of the
// way entirely: no body, no status, no error response. A handler that both
// writes the response and returns a value is reported through the error
// logger, and the response stays exactly as the handler sent it.
//
// # Thread Safety
//
// The method map and options are read-only after Handle returns; requests
// share no mutable state, so the returned handler is safe for concurrent
// use.
package endpoint
