// Package metrics defines and registers all custom Prometheus metrics for
// the IFDS dashboard. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ifds_dashboard"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// UpstreamRequestDuration measures one round-trip to the upstream API.
// Labels:
//   - group: first path segment (auth, inventory, transactions, fraud, reports)
//   - method: HTTP method
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the upstream fraud-detection API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"group", "method"},
)

// UpstreamErrorsTotal counts failed upstream calls.
// Labels:
//   - group: first path segment of the request
//   - reason: "transport", "read", or the HTTP status code
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total upstream API calls that failed, by reason.",
	},
	[]string{"group", "reason"},
)

// ── Access policy metrics ────────────────────────────────────────────────────

// GuardDenialsTotal counts navigations the route guard turned away.
// Label:
//   - reason: "unauthenticated" (sent to login) or "forbidden" (sent to dashboard)
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total navigations denied by the route guard, by reason.",
	},
	[]string{"reason"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionsEstablishedTotal counts successful logins.
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total sessions established after a successful login.",
	},
)

// SessionsClearedTotal counts explicit logouts.
var SessionsClearedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_cleared_total",
		Help:      "Total sessions destroyed by logout.",
	},
)

// ── Report metrics ───────────────────────────────────────────────────────────

// ReportDownloadsTotal counts report exports.
// Label:
//   - report: the report identifier (daily, weekly-fraud, monthly, …)
var ReportDownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_downloads_total",
		Help:      "Total report JSON downloads, by report identifier.",
	},
	[]string{"report"},
)
