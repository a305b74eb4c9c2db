package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics holds Prometheus instruments for the submission client.
type Metrics struct {
	SubmissionsTotal  *prometheus.CounterVec
	AttemptsTotal     *prometheus.CounterVec
	RetriesTotal      *prometheus.CounterVec
	SubmissionLatency *prometheus.HistogramVec
	InFlight          prometheus.Gauge
}

// NewMetrics creates the instruments and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datapipeline_submissions_total",
			Help: "Completed submissions, labelled by event kind and outcome.",
		}, []string{"kind", "outcome"}),
		AttemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datapipeline_attempts_total",
			Help: "HTTP attempts, labelled by event kind and status class.",
		}, []string{"kind", "status"}),
		RetriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datapipeline_retries_total",
			Help: "Retries scheduled after a retryable attempt.",
		}, []string{"kind"}),
		SubmissionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datapipeline_submission_duration_seconds",
			Help:    "End-to-end submission latency including retries.",
			Buckets: latencyBuckets,
		}, []string{"kind"}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "datapipeline_submissions_in_flight",
			Help: "Submissions currently waiting on the network or a backoff.",
		}),
	}
}

// RecordSubmission records a finished submission.
func (m *Metrics) RecordSubmission(kind, outcome string, latencySeconds float64) {
	m.SubmissionsTotal.WithLabelValues(kind, outcome).Inc()
	m.SubmissionLatency.WithLabelValues(kind).Observe(latencySeconds)
}

// RecordAttempt records one HTTP attempt. A statusCode of 0 means no
// response was received.
func (m *Metrics) RecordAttempt(kind string, statusCode int) {
	m.AttemptsTotal.WithLabelValues(kind, StatusClass(statusCode)).Inc()
}

// RecordRetry records a scheduled retry.
func (m *Metrics) RecordRetry(kind string) {
	m.RetriesTotal.WithLabelValues(kind).Inc()
}

// AddInFlight moves the in-flight gauge by delta.
func (m *Metrics) AddInFlight(delta float64) {
	m.InFlight.Add(delta)
}

// StatusClass maps an HTTP status to a low-cardinality label such as "2xx".
func StatusClass(code int) string {
	if code <= 0 {
		return "transport_error"
	}
	return strconv.Itoa(code/100) + "xx"
}
