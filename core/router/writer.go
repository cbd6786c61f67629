package router

import (
	"bufio"
	"net"
	"net/http"
)

// responseWriter tracks whether the response has been started.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether WriteHeader has been called.
func (w *responseWriter) Written() bool { return w.written }

// Status returns the status code sent, or 0.
func (w *responseWriter) Status() int { return w.status }

// Unwrap lets http.ResponseController reach the underlying writer
// (the websocket upgrade needs its Hijacker).
func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Hijack hands the connection to the caller, marking the response started.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.written = true
	}
	return conn, rw, err
}

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Written reports whether the response behind w has already been started.
// Error handlers use it to avoid writing a second status line.
func Written(w http.ResponseWriter) bool {
	if ww, ok := w.(*responseWriter); ok {
		return ww.Written()
	}
	return false
}
