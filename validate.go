package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

// engine is shared across requests; validator.Validate is safe for
// concurrent use.
var engine = validator.New()

// Field declares the rules for a single request field.
type Field struct {
	// Rules is a go-playground/validator tag expression,
	// e.g. "required,email" or "required,eq=bar".
	Rules string

	// Trim strips surrounding whitespace before validation, so rules and
	// the handler both see the trimmed value.
	Trim bool

	// Default fills the field when it is absent or empty.
	Default string
}

// Schema maps field names to their rules. Fields not named by the schema
// pass through unvalidated.
type Schema map[string]Field

// Schemas declares the validated request segments. A nil segment imposes no
// constraint.
type Schemas struct {
	Query   Schema
	Body    Schema
	Headers Schema
}

// Validate returns a decorator that validates and normalizes the request
// before delegating to the wrapped handler.
//
// Validation failures become 400s whose message names the offending field,
// segment-qualified: `"body.foo" is required`. On success, normalized
// values (trimmed, defaulted) are written back onto the request, so the
// query string, headers, and body the handler reads are the normalized ones
// rather than the raw input. The handler's return value and errors propagate
// unchanged.
//
// Example:
//
//	create := endpoint.Validate(endpoint.Schemas{
//	    Body: endpoint.Schema{
//	        "email": {Rules: "required,email", Trim: true},
//	        "name":  {Rules: "required,min=2", Trim: true},
//	    },
//	})(createUser)
func Validate(schemas Schemas) func(Handler) Handler {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			if err := applySchemas(r, schemas); err != nil {
				return nil, err
			}
			return next(w, r)
		}
	}
}

func applySchemas(r *http.Request, schemas Schemas) error {
	if schemas.Query != nil {
		q := r.URL.Query()
		values := make(map[string]any, len(q))
		for key := range q {
			values[key] = q.Get(key)
		}
		if err := checkSegment("query", schemas.Query, values); err != nil {
			return err
		}
		for key := range schemas.Query {
			if v, ok := values[key].(string); ok {
				q.Set(key, v)
			}
		}
		r.URL.RawQuery = q.Encode()
	}

	if schemas.Headers != nil {
		values := make(map[string]any, len(schemas.Headers))
		for key := range schemas.Headers {
			if v := r.Header.Get(key); v != "" {
				values[key] = v
			}
		}
		if err := checkSegment("headers", schemas.Headers, values); err != nil {
			return err
		}
		for key := range schemas.Headers {
			if v, ok := values[key].(string); ok {
				r.Header.Set(key, v)
			}
		}
	}

	if schemas.Body != nil {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return Internal(err)
		}
		values := map[string]any{}
		if len(raw) > 0 {
			if !gjson.ValidBytes(raw) {
				return BadRequest("request body is not valid JSON")
			}
			if err := json.Unmarshal(raw, &values); err != nil {
				return BadRequest("request body must be a JSON object").WithCause(err)
			}
		}
		if err := checkSegment("body", schemas.Body, values); err != nil {
			return err
		}
		normalized, err := json.Marshal(values)
		if err != nil {
			return Internal(err)
		}
		r.Body = io.NopCloser(bytes.NewReader(normalized))
		r.ContentLength = int64(len(normalized))
	}

	return nil
}

// checkSegment normalizes the segment's values in place, then validates
// them against the schema's rules. Returns a 400 for the first failing
// field in sorted order, with the validator failure attached as cause.
func checkSegment(segment string, schema Schema, values map[string]any) error {
	normalize(schema, values)

	rules := make(map[string]any, len(schema))
	for name, field := range schema {
		if field.Rules == "" {
			continue
		}
		// Absent optional fields are not validated; only "required" makes
		// absence itself a failure.
		if _, present := values[name]; !present && !strings.Contains(field.Rules, "required") {
			continue
		}
		rules[name] = field.Rules
	}
	if len(rules) == 0 {
		return nil
	}

	failures := engine.ValidateMap(values, rules)
	if len(failures) == 0 {
		return nil
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	name := names[0]
	return BadRequest(failureMessage(segment, name, failures[name])).WithCause(asError(failures[name]))
}

// normalize applies defaults and trimming ahead of validation, so the rules
// see the same values the handler will.
func normalize(schema Schema, values map[string]any) {
	for name, field := range schema {
		v, present := values[name]
		s, isString := v.(string)
		if isString && field.Trim {
			s = strings.TrimSpace(s)
			values[name] = s
		}
		if field.Default != "" && (!present || (isString && s == "")) {
			values[name] = field.Default
		}
	}
}

// failureMessage renders a single validation failure the way clients read
// it: the segment-qualified field name plus the violated constraint.
func failureMessage(segment, name string, failure any) string {
	qualified := fmt.Sprintf("%q", segment+"."+name)

	errs, ok := failure.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Sprintf("%s is invalid", qualified)
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", qualified)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", qualified, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", qualified, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", qualified, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", qualified, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", qualified, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", qualified)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", qualified)
	case "eq":
		return fmt.Sprintf("%s must equal %q", qualified, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", qualified)
	default:
		return fmt.Sprintf("%s failed the %q constraint", qualified, fe.Tag())
	}
}

func asError(failure any) error {
	if err, ok := failure.(error); ok {
		return err
	}
	return fmt.Errorf("%v", failure)
}
