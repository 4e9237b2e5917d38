// ABOUTME: Panic recovery middleware for the interceptor chain
// ABOUTME: Turns internal failures into logged, counted 500 responses

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/2389/tollgate/internal/metrics"
)

// Recoverer converts a panic in the wrapped chain into a 500 response.
// The failure is logged at error level with its stack and counted per route,
// so corrupted limiter state surfaces in telemetry instead of being repaired.
func Recoverer(logger *slog.Logger, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				metrics.InternalFailures.WithLabelValues(route).Inc()
				logger.Error("internal failure handling request",
					"route", route,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
