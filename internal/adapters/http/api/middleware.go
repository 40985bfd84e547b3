package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/clubrecords/pkg/logger"
	"github.com/okian/clubrecords/pkg/metrics"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(wrapped.statusCode), durationMs)

		if wrapped.statusCode >= http.StatusBadRequest {
			logRequestError(r.Context(), endpoint, r, wrapped.statusCode)
		}
	}
}

func logRequestError(ctx context.Context, endpoint string, r *http.Request, status int) {
	log := logger.Get()
	fields := []logger.Field{
		logger.String("endpoint", endpoint),
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.String("error_type", errorType(status)),
	}
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", fields...)
		return
	}
	log.Debug(ctx, "request rejected", fields...)
}

func errorType(statusCode int) string {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return "server_error"
	case statusCode == http.StatusNotFound:
		return "not_found"
	case statusCode >= http.StatusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
