package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersRegisterAndIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.DonationCreated("promptpay")
	m.DonationCreated("promptpay")
	m.PaymentOutcome("confirmed")
	m.LedgerError("unexpected")

	require.Equal(t, 2.0, testutil.ToFloat64(m.DonationsCreated.WithLabelValues("promptpay")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.PaymentOutcomes.WithLabelValues("confirmed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LedgerErrors.WithLabelValues("unexpected")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.LedgerErrors.WithLabelValues("validation")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.DonationCreated("linepay")
		m.PaymentOutcome("failed")
		m.LedgerError("validation")
	})
}
