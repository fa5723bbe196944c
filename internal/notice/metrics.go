package notice

import "github.com/prometheus/client_golang/prometheus"

const (
	opSearch    = "search"
	opGetByCode = "get_by_code"
	opFeedback  = "submit_feedback"

	outcomeOK        = "ok"
	outcomeStatus    = "bad_status"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

var (
	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complia_backend_requests_total",
			Help: "Total number of calls to the notices backend",
		},
		[]string{"operation", "outcome"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "complia_backend_request_duration_seconds",
			Help:    "Histogram of notices backend response time",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		backendRequestsTotal,
		backendRequestDuration,
	)
}
