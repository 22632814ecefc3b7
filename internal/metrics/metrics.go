// Package metrics exposes the prometheus instruments shared across services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AccessDecisions counts guard-level access decisions by resource and
// outcome.
var AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "helpdesk_access_decisions_total",
	Help: "Access decisions by resource type and outcome",
}, []string{"resource", "outcome"})

// RecordDecision increments the decision counter.
func RecordDecision(resource string, allowed bool) {
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	AccessDecisions.WithLabelValues(resource, outcome).Inc()
}
