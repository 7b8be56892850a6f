// Package metrics exposes Prometheus counters for the donation ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger counters.
type Metrics struct {
	DonationsCreated *prometheus.CounterVec
	PaymentOutcomes  *prometheus.CounterVec
	LedgerErrors     *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DonationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tipjar_donations_created_total",
			Help: "Donations recorded in pending state, by payment method.",
		}, []string{"payment_method"}),
		PaymentOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tipjar_payment_outcomes_total",
			Help: "Applied payment outcomes, by resulting status.",
		}, []string{"outcome"}),
		LedgerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tipjar_ledger_errors_total",
			Help: "Ledger operation failures, by error kind.",
		}, []string{"kind"}),
	}
}

// DonationCreated counts one new donation.
func (m *Metrics) DonationCreated(paymentMethod string) {
	if m == nil {
		return
	}
	m.DonationsCreated.WithLabelValues(paymentMethod).Inc()
}

// PaymentOutcome counts one applied transition.
func (m *Metrics) PaymentOutcome(outcome string) {
	if m == nil {
		return
	}
	m.PaymentOutcomes.WithLabelValues(outcome).Inc()
}

// LedgerError counts one failed operation. Unexpected failures use their own
// kind so alerts can ignore user-input noise.
func (m *Metrics) LedgerError(kind string) {
	if m == nil {
		return
	}
	m.LedgerErrors.WithLabelValues(kind).Inc()
}
