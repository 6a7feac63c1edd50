// Package metrics defines and registers the custom Prometheus metrics for
// the campus portal API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campus"

// RegistrationsTotal counts successfully created accounts.
// Label:
//   - role: the role the account was registered with
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "role_mismatch"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ContentMutationsTotal counts writes to the protected collections.
// Labels:
//   - collection: "news" or "resources"
//   - op: "create", "update", or "delete"
var ContentMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_mutations_total",
		Help:      "Total number of content collection mutations.",
	},
	[]string{"collection", "op"},
)

// ContentCacheTotal counts list-cache lookups.
// Label:
//   - result: "hit" or "miss"
var ContentCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_cache_total",
		Help:      "Total number of content list cache lookups, by result.",
	},
	[]string{"result"},
)
