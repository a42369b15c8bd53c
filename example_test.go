package endpoint_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bjaus/endpoint"
)

func ExampleHandle() {
	h := endpoint.Handle(endpoint.Methods{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) (any, error) {
			return map[string]string{"status": "ok"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	fmt.Println(rec.Code, rec.Body.String())
	// Output:
	// 200 {"status":"ok"}
}

func ExampleHandle_methodNotAllowed() {
	h := endpoint.Handle(endpoint.Methods{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) (any, error) {
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))

	fmt.Println(rec.Code, rec.Body.String())
	// Output:
	// 405 {"statusCode":405,"error":"Method Not Allowed","message":"Method DELETE is not supported for this endpoint"}
}

func ExampleValidate() {
	create := endpoint.Validate(endpoint.Schemas{
		Body: endpoint.Schema{
			"email": {Rules: "required,email", Trim: true},
		},
	})(func(w http.ResponseWriter, r *http.Request) (any, error) {
		return nil, nil
	})

	h := endpoint.Handle(endpoint.Methods{http.MethodPost: create})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`)))

	fmt.Println(rec.Code, rec.Body.String())
	// Output:
	// 400 {"statusCode":400,"error":"Bad Request","message":"\"body.email\" is required"}
}

func ExampleBind() {
	type createItem struct {
		Name string `json:"name"`
	}

	h := endpoint.Handle(endpoint.Methods{
		http.MethodPost: endpoint.Bind(func(w http.ResponseWriter, r *http.Request, body createItem) (any, error) {
			w.WriteHeader(http.StatusCreated)
			return body, nil
		}),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"widget"}`)))

	fmt.Println(rec.Code, rec.Body.String())
	// Output:
	// 201 {"name":"widget"}
}

// The dispatcher produces a plain http.Handler, so it mounts on any router.
func Example_mounting() {
	r := chi.NewRouter()
	r.Mount("/api/items", endpoint.Handle(endpoint.Methods{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) (any, error) {
			return []string{"widget", "gadget"}, nil
		},
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	fmt.Println(rec.Body.String())
	// Output:
	// ["widget","gadget"]
}
