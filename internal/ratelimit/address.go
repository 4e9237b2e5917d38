// ABOUTME: HTTP middleware admitting one request per cooldown per client address
// ABOUTME: Gates unauthenticated routes independently of any credential

package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2389/tollgate/internal/metrics"
)

const addressLimiterName = "address"

// KeyFunc derives a rate-limit key from a request.
type KeyFunc func(r *http.Request) string

// ClientAddress returns a KeyFunc keyed by the client's host address.
// When trustForwardedFor is set, the first X-Forwarded-For hop wins; only
// enable it behind a proxy that overwrites the header.
func ClientAddress(trustForwardedFor bool) KeyFunc {
	return func(r *http.Request) string {
		if trustForwardedFor {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// AddressLimiter admits at most one request per cooldown for each client address.
type AddressLimiter struct {
	table  *Table
	keyFn  KeyFunc
	logger *slog.Logger
}

// AddressOption configures an AddressLimiter.
type AddressOption func(*AddressLimiter)

// WithKeyFunc overrides how the client address is derived.
func WithKeyFunc(fn KeyFunc) AddressOption {
	return func(l *AddressLimiter) { l.keyFn = fn }
}

// WithAddressLogger sets the logger used for rejection messages.
func WithAddressLogger(logger *slog.Logger) AddressOption {
	return func(l *AddressLimiter) { l.logger = logger }
}

// NewAddressLimiter creates an address limiter backed by table.
func NewAddressLimiter(table *Table, opts ...AddressOption) *AddressLimiter {
	l := &AddressLimiter{
		table:  table,
		keyFn:  ClientAddress(false),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Middleware wraps next with the address cooldown gate.
// Rejections report the full cooldown in Retry-After, not the time remaining.
func (l *AddressLimiter) Middleware() func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(l.table.Cooldown() / time.Second))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := l.keyFn(r)

			dec := l.table.Admit(key)
			metrics.RateLimitTrackedKeys.WithLabelValues(addressLimiterName).Set(float64(l.table.Len()))
			if !dec.Admitted {
				metrics.RateLimitDecisions.WithLabelValues(addressLimiterName, metrics.DecisionRejected).Inc()
				l.logger.Debug("address rate limit reached", "key", key, "path", r.URL.Path, "remaining", dec.Remaining)
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "Rate limit reached. Try again later.", http.StatusTooManyRequests)
				return
			}
			metrics.RateLimitDecisions.WithLabelValues(addressLimiterName, metrics.DecisionAdmitted).Inc()

			next.ServeHTTP(w, r)
		})
	}
}
