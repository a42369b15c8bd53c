package endpoint

import "net/http"

// responseWriter wraps the underlying writer so the dispatcher can tell
// whether a handler already sent the response itself. WriteHeader is
// deferred until the first body write: a handler can set a status and still
// return a value for the dispatcher to encode, and a later error can still
// replace the status as long as nothing has been written.
type responseWriter struct {
	http.ResponseWriter
	status    int
	committed bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.committed {
		return
	}
	w.status = status
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

// commit flushes the recorded status line ahead of the first body byte.
// After commit the response belongs to whoever wrote it.
func (w *responseWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
}

// Flush commits the response and flushes buffered data to the client, for
// handlers that stream.
func (w *responseWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
