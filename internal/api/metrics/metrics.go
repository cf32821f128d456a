// Package metrics defines the Prometheus metrics for rtetrack: calls made to the
// RTE gateway and the outcomes of user actions. All metrics are registered with
// the default registry through promauto and exposed by the local UI at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rtetrack"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests sent to the RTE gateway.
// Labels:
//   - endpoint: "token", "tracking" or "receipt"
//   - outcome: "ok", "http_error", "transport_error" or "decode_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the RTE gateway.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures gateway round trips.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the RTE gateway.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// TokenAcquisitionsTotal counts token exchanges that actually hit the network.
// Callers coalesced by single-flight are not counted.
var TokenAcquisitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_acquisitions_total",
		Help:      "Total number of password-grant token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Action metrics ────────────────────────────────────────────────────────────

// LateDeliveriesTotal counts tracking queries flagged as late.
var LateDeliveriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "late_deliveries_total",
		Help:      "Total number of tracking queries whose delivery was flagged late.",
	},
)

// ReceiptOutcomesTotal counts receipt actions.
// Label:
//   - kind: "url", "download" or "not_found"
var ReceiptOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipt_outcomes_total",
		Help:      "Total number of receipt actions, by outcome kind.",
	},
	[]string{"kind"},
)
