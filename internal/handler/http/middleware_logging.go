package http

import (
	"net/http"
	"time"

	"github.com/lanaseq/lanaseq/internal/logger"
)

// withLogging emits one access-log line per request with the final status,
// payload size and handling duration. Must run after withTraceID so the
// line carries the trace identifier.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(wrapped, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", wrapped.status).
			Int("size", wrapped.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
