// Package metrics registers the Prometheus collectors exposed at /metrics.
package metrics
