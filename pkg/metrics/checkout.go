package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics counts checkout submission outcomes. The partial_failure
// outcome is the one worth alerting on; it means an order row exists with no
// lines attached.
type CheckoutMetrics struct {
	outcomes *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by outcome: accepted, rejected, failed, partial_failure.",
	}, []string{"outcome"})
	reg.MustRegister(outcomes)
	return &CheckoutMetrics{outcomes: outcomes}
}

// IncOutcome increments the counter for the named submission outcome.
func (m *CheckoutMetrics) IncOutcome(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}
