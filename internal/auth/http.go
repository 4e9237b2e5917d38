// ABOUTME: HTTP middleware for bearer-token authentication on protected routes
// ABOUTME: Extracts the token from the Authorization header and adds the principal to context

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/2389/tollgate/internal/metrics"
)

// ErrUnauthorized is the single outcome for every credential failure.
// Callers never learn whether the header was missing, malformed or expired.
var ErrUnauthorized = errors.New("unauthorized")

const bearerPrefix = "Bearer "

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", "invalid authorization header format"
	}
	return strings.TrimPrefix(authHeader, bearerPrefix), ""
}

// Authenticate resolves the request's Authorization header to a Principal.
// Every failure wraps ErrUnauthorized; the cause is kept for logging only.
func Authenticate(r *http.Request, codec TokenCodec) (*Principal, error) {
	token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errMsg)
	}

	principal, err := codec.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return principal, nil
}

// HTTPAuthMiddleware creates an HTTP middleware that requires a valid bearer token.
// Failures are answered with a plain 401 before any inner handler runs.
func HTTPAuthMiddleware(codec TokenCodec, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := Authenticate(r, codec)
			if err != nil {
				logger.Debug("rejecting unauthenticated request", "path", r.URL.Path, "reason", err)
				metrics.AuthFailures.Inc()
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
