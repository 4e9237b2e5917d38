// ABOUTME: Interceptor chain composition and route registration
// ABOUTME: Wires address-gated auth routes and principal-gated user routes onto the mux

package server

import (
	"net/http"

	"github.com/2389/tollgate/internal/auth"
	"github.com/2389/tollgate/internal/metrics"
	"github.com/2389/tollgate/internal/ratelimit"
)

// Middleware wraps a handler with another handler of the same shape.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with mws so that mws[0] is the outermost layer and runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// registerRoutes builds the mux. Unauthenticated routes sit behind the address
// limiter only; identity routes run the auth extractor, then the principal limiter.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	addressGate := ratelimit.NewAddressLimiter(s.addressTable,
		ratelimit.WithKeyFunc(ratelimit.ClientAddress(s.config.Server.TrustForwardedFor)),
		ratelimit.WithAddressLogger(s.logger.With("limiter", "address")),
	).Middleware()
	principalGate := ratelimit.NewPrincipalLimiter(s.principalTable, s.logger.With("limiter", "principal")).Middleware()
	authenticate := auth.HTTPAuthMiddleware(s.codec, s.logger.With("component", "auth"))

	// Health endpoints - no gates
	mux.Handle("GET /health", Recoverer(s.logger, "/health")(http.HandlerFunc(s.handleHealth)))

	mux.Handle("POST /auth/register", Chain(http.HandlerFunc(s.handleRegister),
		Recoverer(s.logger, "/auth/register"), addressGate))
	mux.Handle("POST /auth/login", Chain(http.HandlerFunc(s.handleLogin),
		Recoverer(s.logger, "/auth/login"), addressGate))

	mux.Handle("GET /user/me", Chain(http.HandlerFunc(s.handleMe),
		Recoverer(s.logger, "/user/me"), authenticate, principalGate))

	if s.config.Metrics.Enabled {
		mux.Handle("GET "+s.config.Metrics.Path, metrics.Handler())
		s.logger.Info("metrics endpoint enabled", "path", s.config.Metrics.Path)
	}
}
