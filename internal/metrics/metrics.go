// Package metrics defines and registers the client's Prometheus metrics. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at package load; expose them by
// mounting promhttp on the configured metrics address.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scoretalk"

// RequestsTotal counts completed API requests.
// Labels:
//   - method: HTTP method ("GET", "POST", "DELETE")
//   - status: numeric HTTP status code, or "error" when the request never
//     produced a response (transport failure)
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests issued, by method and response status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures the wall time of a single API request.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from send to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ProfileFetchesTotal counts current-user profile fetches triggered by token
// changes.
// Label:
//   - result: "ok", "error", or "stale" (superseded by a newer token before
//     the response arrived)
var ProfileFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_profile_fetches_total",
		Help:      "Total number of profile fetches performed by the session store, by result.",
	},
	[]string{"result"},
)
