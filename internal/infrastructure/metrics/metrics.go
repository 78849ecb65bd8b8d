package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the workflow's Prometheus collectors. All methods are safe to
// call on a nil *Metrics so tests and tools can run without a registry.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Claims      *prometheus.CounterVec
	// ClaimDegraded counts claims that ran without the atomic conditional update.
	ClaimDegraded      *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_workflow_transitions_total",
			Help: "Workflow operations by operation and outcome",
		}, []string{"operation", "outcome"}),

		Claims: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_workflow_claims_total",
			Help: "Successful review lane claims by lane and mode",
		}, []string{"lane", "mode"}), // mode: "atomic", "fallback"

		ClaimDegraded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_claim_degraded_total",
			Help: "Claims executed with the non-exclusive read-then-write path",
		}, []string{"lane"}),

		SideEffectFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_workflow_side_effect_failures_total",
			Help: "Best-effort side effects that failed after a committed transition",
		}, []string{"effect"}), // effect: "audit", "notification"

		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_notifications_total",
			Help: "Notification dispatch results by provider and result",
		}, []string{"provider", "result"}),
	}
}

func (m *Metrics) IncTransition(operation, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(operation, outcome).Inc()
	}
}

func (m *Metrics) IncClaim(lane, mode string) {
	if m != nil {
		m.Claims.WithLabelValues(lane, mode).Inc()
	}
}

func (m *Metrics) IncClaimDegraded(lane string) {
	if m != nil {
		m.ClaimDegraded.WithLabelValues(lane).Inc()
	}
}

func (m *Metrics) IncSideEffectFailure(effect string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(effect).Inc()
	}
}

func (m *Metrics) IncNotification(provider, result string) {
	if m != nil {
		m.Notifications.WithLabelValues(provider, result).Inc()
	}
}
