package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseWriter wraps a ResponseWriter with the bookkeeping needed to honor
// the "response written exactly once" invariant across the three dispatch
// modes: headers are sent at most once, and every frame checks that the
// response has not already been ended.
type sseWriter struct {
	w      http.ResponseWriter
	ended  bool
	opened bool
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	return &sseWriter{w: w}
}

// Open sets SSE headers, flushes them, and writes the leading :ok comment
// frame that defeats intermediary response buffering. requestID is
// surfaced as X-Request-Id.
func (s *sseWriter) Open(requestID string) {
	if s.opened {
		return
	}
	s.opened = true
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Request-Id", requestID)
	if flusher, ok := s.w.(http.Flusher); ok {
		flusher.Flush()
	}
	fmt.Fprint(s.w, ":ok\n\n")
	s.flush()
}

// WriteChunk marshals v and writes it as one "data: " SSE frame.
func (s *sseWriter) WriteChunk(v interface{}) {
	if s.ended {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.flush()
}

// Done writes the terminal "data: [DONE]" frame and marks the response
// ended; subsequent writes are no-ops.
func (s *sseWriter) Done() {
	if s.ended {
		return
	}
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.flush()
	s.ended = true
}

func (s *sseWriter) flush() {
	if flusher, ok := s.w.(http.Flusher); ok {
		flusher.Flush()
	}
}
