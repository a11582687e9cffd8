package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/rpattn/clientdesk/internal/metrics"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// responseWriter captures HTTP status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request and feeds the HTTP metrics. A missing
// request ID is generated and echoed back.
func LoggingMiddleware(recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			recorder.ObserveHTTP(r.Method, rw.statusCode, duration)
			log.Printf("[HTTP] %s %s %d %s from %s id=%s", r.Method, r.URL.Path, rw.statusCode, duration, r.RemoteAddr, requestID)
		})
	}
}
