package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "csr_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "csr_operation_duration_seconds",
			Help:    "Asynchronous store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"kind", "phase"},
	)

	OperationsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "csr_operations_in_flight",
			Help: "Asynchronous store operations currently pending",
		},
		[]string{"kind"},
	)

	StateItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "csr_state_items",
			Help: "Records held in each state slice",
		},
		[]string{"slice"},
	)

	WizardSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "csr_wizard_sessions",
			Help: "Open reporting wizard sessions",
		},
	)
)

func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordStateItems(slice string, n int) {
	StateItems.WithLabelValues(slice).Set(float64(n))
}

func RecordOperation(kind, phase string, duration time.Duration) {
	OperationDuration.WithLabelValues(kind, phase).Observe(duration.Seconds())
}
