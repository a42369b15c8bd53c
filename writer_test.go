package endpoint

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter(t *testing.T) {
	t.Run("WriteHeader is deferred until the first write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusCreated)
		if w.committed {
			t.Error("setting a status must not commit the response")
		}
		if rec.Flushed {
			t.Error("nothing should reach the underlying writer yet")
		}

		_, _ = w.Write([]byte("{}"))
		if !w.committed {
			t.Error("writing must commit the response")
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
		}
	})

	t.Run("status changes are ignored after commit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		_, _ = w.Write([]byte("x"))
		w.WriteHeader(http.StatusTeapot)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("the last status before commit wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write(nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})

	t.Run("flush commits with the recorded status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusNoContent)
		w.Flush()
		if !w.committed {
			t.Error("flush must commit the response")
		}
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
		if !rec.Flushed {
			t.Error("flush must reach the underlying writer")
		}
	})
}
