// Package audit persists the Decision Engine's per-decision audit trail and
// exposes prometheus metrics for the decision, scheduling, and publishing
// subsystems — the C11 observability layer. Grounded on the teacher's
// security/audit.go buffered-channel-in-front-of-storage pattern, carried
// forward even though spec.md's Non-goals exclude a full observability
// platform: structured audit logging is an ambient concern, not a feature.
package audit

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Metrics is the set of prometheus collectors this service populates.
type Metrics struct {
	DecisionsTotal           *prometheus.CounterVec
	DecisionTimeouts         prometheus.Counter
	SchedulingConflictsTotal *prometheus.CounterVec
	PublishOutcomesTotal     *prometheus.CounterVec
	CircuitBreakerOpen       *prometheus.GaugeVec
}

// NewMetrics builds and registers every collector against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_decisions_total",
			Help: "Decisions processed by the decision engine, labeled by route.",
		}, []string{"route"}),
		DecisionTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "social_decision_timeouts_total",
			Help: "Decisions that hit the per-decision deadline before completing analysis.",
		}),
		SchedulingConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_scheduling_conflicts_total",
			Help: "Scheduling conflicts detected, labeled by type and severity.",
		}, []string{"type", "severity"}),
		PublishOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_publish_outcomes_total",
			Help: "Per-platform publish attempts, labeled by platform and outcome status.",
		}, []string{"platform", "status"}),
		CircuitBreakerOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "social_publish_circuit_breaker_open",
			Help: "1 if the per-platform publish circuit breaker is currently open, else 0.",
		}, []string{"platform"}),
	}
	reg.MustRegister(m.DecisionsTotal, m.DecisionTimeouts, m.SchedulingConflictsTotal, m.PublishOutcomesTotal, m.CircuitBreakerOpen)
	return m
}

// ObserveTrail updates decision-level counters from one decision's audit
// trail: a routed stage increments DecisionsTotal by route, a timeout stage
// increments DecisionTimeouts.
func (m *Metrics) ObserveTrail(entries []socialmodel.AuditEntry) {
	for _, e := range entries {
		switch e.Stage {
		case "routed":
			if route, ok := e.Details["route"]; ok {
				m.DecisionsTotal.WithLabelValues(route).Inc()
			}
		case "timeout":
			m.DecisionTimeouts.Inc()
		}
	}
}

// ObserveConflict records one detected scheduling conflict.
func (m *Metrics) ObserveConflict(conflictType, severity string) {
	m.SchedulingConflictsTotal.WithLabelValues(conflictType, severity).Inc()
}

// ObservePublishOutcome records one per-platform publish attempt.
func (m *Metrics) ObservePublishOutcome(platform, status string) {
	m.PublishOutcomesTotal.WithLabelValues(platform, status).Inc()
}

// SetCircuitBreakerOpen reports the current open/closed state of a
// platform's publish circuit breaker.
func (m *Metrics) SetCircuitBreakerOpen(platform string, open bool) {
	v := 0.0
	if open {
		v = 1.0
	}
	m.CircuitBreakerOpen.WithLabelValues(platform).Set(v)
}
