package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter records the status and body size of a response so that
// middleware and the error handler can tell whether a handler already
// answered. One ResponseWriter is shared by everything serving a request.
type ResponseWriter struct {
	http.ResponseWriter

	mu        sync.Mutex
	status    int
	size      int64
	committed bool
}

// NewResponseWriter wraps w. Status reports 200 until a header is written.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// commit marks the header as sent with code, reporting whether this call
// was the one that sent it.
func (w *ResponseWriter) commit(code int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.committed {
		return false
	}
	w.committed = true
	w.status = code
	return true
}

// WriteHeader forwards the first status code and drops later ones.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.commit(code) {
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.commit(http.StatusOK) {
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)

	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the response status code.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.committed
}

func (w *ResponseWriter) Flush() {
	if w.commit(http.StatusOK) {
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
