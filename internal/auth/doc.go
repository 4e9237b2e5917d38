// Package auth provides bearer-token authentication for tollgate.
//
// # Tokens
//
// Tokens are HS256 JWTs signed with the configured auth.jwt_secret. Every
// token carries a subject ("sub") and an absolute expiry ("exp") 24 hours
// after issuance:
//
//	codec, err := NewJWTCodec(secret)
//	token, err := codec.Issue(userID)
//	principal, err := codec.Validate(token)
//
// Validate distinguishes ErrMalformedToken (unparseable, bad signature,
// missing claims) from ErrExpiredToken. Those details stay inside the
// process: over HTTP every failure is a plain 401.
//
// # HTTP Middleware
//
// HTTPAuthMiddleware requires "Authorization: Bearer <token>" and attaches
// the resulting Principal to the request context:
//
//	mw := HTTPAuthMiddleware(codec, logger)
//	handler := mw(next)
//
// Downstream handlers and middleware read it with PrincipalFromContext.
//
// # Passwords
//
// HashPassword and CheckPassword wrap bcrypt for the register and login
// handlers. CheckPassword with an empty hash still burns a comparison so
// unknown accounts are not distinguishable by timing.
package auth
