package middleware

import (
	"net/http"
	"time"

	"ancine-api/internal/observability"

	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request counts, latency, and in-flight gauge per
// route pattern. The chi pattern keeps label cardinality bounded even though
// paths carry identifiers.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			observability.APIActiveRequests.Inc()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			observability.APIActiveRequests.Dec()

			endpoint := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					endpoint = pattern
				}
			}
			observability.RecordAPIRequest(r.Method, endpoint, wrapped.statusCode, time.Since(start))
		})
	}
}
