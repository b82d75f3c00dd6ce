package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingCounters(t *testing.T) {
	m := NewWithRegisterer("parking", prometheus.NewRegistry())

	m.IncBookingCreated("PARKING", "CONFIRMED")
	m.IncBookingCreated("PARKING", "CONFIRMED")
	m.IncBookingRejected("SERVICE", "CONFLICT")
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", "201", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("PARKING", "CONFIRMED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsRejected.WithLabelValues("SERVICE", "CONFLICT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBookingCreated("PARKING", "PAID")
		m.ObserveDBQuery("query", time.Millisecond)
		m.SetDBConnections(1, 1, 0)
		m.IncPayment("approved")
	})
}
