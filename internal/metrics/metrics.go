// ABOUTME: Prometheus collectors for the request-interception pipeline
// ABOUTME: Counts auth failures, rate-limit decisions and recovered internal failures

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Decision label values for RateLimitDecisions.
const (
	DecisionAdmitted = "admitted"
	DecisionRejected = "rejected"
)

var (
	// RateLimitDecisions counts cooldown decisions per limiter ("address", "principal").
	// Keys are deliberately not used as labels to keep cardinality bounded.
	RateLimitDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tollgate_ratelimit_decisions_total",
		Help: "Total number of rate-limit decisions grouped by limiter and outcome",
	}, []string{"limiter", "decision"})
	RateLimitTrackedKeys = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tollgate_ratelimit_tracked_keys",
		Help: "Number of keys currently held in a limiter's cooldown table",
	}, []string{"limiter"})
	AuthFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tollgate_auth_failures_total",
		Help: "Total number of requests rejected with 401 by the auth extractor",
	})
	TokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tollgate_tokens_issued_total",
		Help: "Total number of bearer tokens issued by the login handler",
	})
	InternalFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tollgate_internal_failures_total",
		Help: "Total number of requests that failed with a recovered panic",
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(RateLimitDecisions)
	prometheus.MustRegister(RateLimitTrackedKeys)
	prometheus.MustRegister(AuthFailures)
	prometheus.MustRegister(TokensIssued)
	prometheus.MustRegister(InternalFailures)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
