package observability

import (
	"sync"

	gu "github.com/xraph/go-utils/metrics"
)

// FactoryMetrics records the client's observations through any go-utils
// MetricFactory, e.g. a host application's metrics system or
// metrics.NewMetricsCollector for standalone use.
//
// The unlabelled instruments hold totals across all kinds. Labelled series
// are derived once per label set and kept here, since go-utils children are
// not tracked by their factory.
type FactoryMetrics struct {
	SubmissionsTotal  gu.Counter
	AttemptsTotal     gu.Counter
	RetriesTotal      gu.Counter
	SubmissionLatency gu.Histogram
	InFlight          gu.Gauge

	mu     sync.Mutex
	series map[string]gu.Counter
}

// NewFactoryMetrics creates the instruments from factory.
func NewFactoryMetrics(factory gu.MetricFactory) *FactoryMetrics {
	return &FactoryMetrics{
		SubmissionsTotal: factory.Counter("datapipeline_submissions_total",
			gu.WithDescription("Completed submissions.")),
		AttemptsTotal: factory.Counter("datapipeline_attempts_total",
			gu.WithDescription("HTTP attempts.")),
		RetriesTotal: factory.Counter("datapipeline_retries_total",
			gu.WithDescription("Retries scheduled after a retryable attempt.")),
		SubmissionLatency: factory.Histogram("datapipeline_submission_duration_seconds",
			gu.WithDescription("End-to-end submission latency including retries."),
			gu.WithUnit("seconds"),
			gu.WithBuckets(latencyBuckets...)),
		InFlight: factory.Gauge("datapipeline_submissions_in_flight",
			gu.WithDescription("Submissions currently waiting on the network or a backoff.")),
		series: make(map[string]gu.Counter),
	}
}

// Series returns the labelled counter derived from parent, creating it on
// first use.
func (m *FactoryMetrics) Series(parent gu.Counter, labels map[string]string) gu.Counter {
	key := parent.Describe().Name + "{" + gu.TagsToString(labels) + "}"

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.series[key]
	if !ok {
		c = parent.WithLabels(labels)
		m.series[key] = c
	}
	return c
}

// RecordSubmission records a finished submission.
func (m *FactoryMetrics) RecordSubmission(kind, outcome string, latencySeconds float64) {
	m.SubmissionsTotal.Inc()
	m.Series(m.SubmissionsTotal, map[string]string{"kind": kind, "outcome": outcome}).Inc()
	m.SubmissionLatency.Observe(latencySeconds)
}

// RecordAttempt records one HTTP attempt.
func (m *FactoryMetrics) RecordAttempt(kind string, statusCode int) {
	m.AttemptsTotal.Inc()
	m.Series(m.AttemptsTotal, map[string]string{"kind": kind, "status": StatusClass(statusCode)}).Inc()
}

// RecordRetry records a scheduled retry.
func (m *FactoryMetrics) RecordRetry(kind string) {
	m.RetriesTotal.Inc()
	m.Series(m.RetriesTotal, map[string]string{"kind": kind}).Inc()
}

// AddInFlight moves the in-flight gauge by delta.
func (m *FactoryMetrics) AddInFlight(delta float64) {
	m.InFlight.Add(delta)
}
