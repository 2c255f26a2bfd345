// Package metrics defines and registers all custom Prometheus metrics for the
// attendance portal. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr"

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_found", "throttled"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts token checks performed by the auth middleware.
// Label:
//   - result: "success", "missing", "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of request token verifications, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts role-check denials.
// Label:
//   - role: the role the endpoint required (e.g. "admin")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by role checks, by required role.",
	},
	[]string{"role"},
)

// CheckInsTotal counts opened attendance sessions.
var CheckInsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of attendance check-ins.",
	},
)

// CheckOutsTotal counts check-out attempts.
// Label:
//   - result: "closed" or "no_open_session"
var CheckOutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of attendance check-out attempts, by result.",
	},
	[]string{"result"},
)

// SessionHours observes the working hours of each closed session.
var SessionHours = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_hours",
		Help:      "Working hours per closed attendance session.",
		Buckets:   []float64{1, 2, 4, 6, 8, 10, 12, 16, 24},
	},
)
