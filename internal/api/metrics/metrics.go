// Package metrics defines and registers all custom Prometheus metrics for the
// wellness platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soulflow"

// Auth metrics

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginThrottledTotal counts logins rejected by the rate limiter.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// Session metrics

// SessionsSavedTotal counts draft saves by kind.
// Label:
//   - kind: "create" (new draft) or "update" (existing draft)
var SessionsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_saved_total",
		Help:      "Total number of draft saves, by kind.",
	},
	[]string{"kind"},
)

// SessionsPublishedTotal counts draft→published transitions, by category.
var SessionsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_published_total",
		Help:      "Total number of sessions published, by category.",
	},
	[]string{"category"},
)

// SessionViewsTotal counts public single-session fetches, by category.
var SessionViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_views_total",
		Help:      "Total number of public session views, by category.",
	},
	[]string{"category"},
)
