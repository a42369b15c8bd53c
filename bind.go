package endpoint

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Validatable is the interface for payload self-validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type Validatable interface {
	Validate() error
}

// Bind adapts a typed-body handler into a Handler. The request body is
// unmarshaled into T before fn runs, and validated if T implements
// Validatable; unmarshal and validation failures surface as 400s.
//
// Example:
//
//	endpoint.Handle(endpoint.Methods{
//	    http.MethodPost: endpoint.Bind(func(w http.ResponseWriter, r *http.Request, body CreateUser) (any, error) {
//	        return users.Create(r.Context(), body)
//	    }),
//	})
func Bind[T any](fn func(w http.ResponseWriter, r *http.Request, body T) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, Internal(err)
		}

		var body T
		if len(raw) > 0 {
			// Cheap validity check before unmarshaling, so malformed input
			// gets a uniform message instead of a position-dependent one.
			if !gjson.ValidBytes(raw) {
				return nil, BadRequest("request body is not valid JSON")
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, BadRequest(err.Error()).WithCause(err)
			}
		}

		if v, ok := any(body).(Validatable); ok {
			if err := v.Validate(); err != nil {
				return nil, BadRequest(err.Error()).WithCause(err)
			}
		} else if v, ok := any(&body).(Validatable); ok {
			if err := v.Validate(); err != nil {
				return nil, BadRequest(err.Error()).WithCause(err)
			}
		}

		return fn(w, r, body)
	}
}
