// Package ratelimit gates HTTP traffic with fixed per-key cooldowns.
//
// Two limiters share the same Table implementation but own separate tables:
//
//   - AddressLimiter keys by client address and guards unauthenticated routes.
//     Rejections carry Retry-After equal to the full cooldown.
//   - PrincipalLimiter keys by the authenticated principal and must run after
//     auth.HTTPAuthMiddleware. Rejections carry the remaining wait, and every
//     gated response carries X-RateLimit-Limit/Remaining/Reset.
//
// A key admits one request, then rejects everything until the cooldown has
// elapsed since that admission. There is no burst allowance. Table.Admit
// performs the lookup, comparison and write under one mutex, so N concurrent
// requests for an unseen key admit exactly one.
//
// State is local to the process and is lost on restart. A slot consumed by a
// request that is later cancelled is not returned.
package ratelimit
