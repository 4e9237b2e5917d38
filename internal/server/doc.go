// Package server composes the tollgate interceptor chain and runs the HTTP API.
//
// # Interceptor Chain
//
// Each route is a Chain of middlewares around a business handler. The first
// middleware listed is the outermost:
//
//	POST /auth/register  Recoverer -> AddressLimiter -> handleRegister
//	POST /auth/login     Recoverer -> AddressLimiter -> handleLogin
//	GET  /user/me        Recoverer -> HTTPAuthMiddleware -> PrincipalLimiter -> handleMe
//	GET  /health         Recoverer -> handleHealth
//	GET  /metrics        promhttp (when metrics.enabled)
//
// Register and login share one address table, so a client that just
// registered waits a full address cooldown before logging in.
//
// # Responses
//
//   - 401 from the auth middleware has a plain body and no detail.
//   - 429 from the address limiter carries Retry-After = cooldown seconds.
//   - 429 from the principal limiter carries Retry-After and
//     X-RateLimit-Reset = remaining seconds plus Limit 1 / Remaining 0.
//   - Business handler errors are JSON: {"error": "..."}.
//
// # Lifecycle
//
//	srv, err := server.New(cfg, logger)
//	err = srv.Run(ctx) // blocks until ctx is canceled, then shuts down
//
// The cooldown tables live for the process lifetime and are discarded on
// shutdown.
package server
