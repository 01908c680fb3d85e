package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcal",
			Name:      "reservation_operations_total",
			Help:      "Reservation lifecycle operations by op and outcome.",
		},
		[]string{"op", "outcome"},
	)

	exportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcal",
			Name:      "export_runs_total",
			Help:      "Schedule export runs by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationOps, exportRuns)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncReservationOp records a lifecycle operation and its outcome.
func IncReservationOp(op, outcome string) {
	reservationOps.WithLabelValues(op, outcome).Inc()
}

// IncExport records an export run outcome.
func IncExport(outcome string) {
	exportRuns.WithLabelValues(outcome).Inc()
}
