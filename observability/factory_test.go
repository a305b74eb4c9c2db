package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gu "github.com/xraph/go-utils/metrics"
)

func TestFactoryMetricsRecord(t *testing.T) {
	m := NewFactoryMetrics(gu.NewMetricsCollector("datapipeline-test"))

	m.RecordSubmission("account", "success", 0.5)
	m.RecordSubmission("account", "success", 1.5)
	m.RecordSubmission("deposit", "server_error", 0.2)
	m.RecordAttempt("deposit", 503)
	m.RecordAttempt("deposit", 0)
	m.RecordRetry("deposit")
	m.AddInFlight(1)
	m.AddInFlight(1)
	m.AddInFlight(-1)

	if got := m.SubmissionsTotal.Value(); got != 3 {
		t.Fatalf("submissions total = %f, want 3", got)
	}
	accountOK := m.Series(m.SubmissionsTotal, map[string]string{"kind": "account", "outcome": "success"})
	if got := accountOK.Value(); got != 2 {
		t.Fatalf("account successes = %f, want 2", got)
	}
	if got := m.Series(m.AttemptsTotal, map[string]string{"kind": "deposit", "status": "transport_error"}).Value(); got != 1 {
		t.Fatalf("transport_error attempts = %f, want 1", got)
	}
	if got := m.AttemptsTotal.Value(); got != 2 {
		t.Fatalf("attempts total = %f, want 2", got)
	}
	if got := m.RetriesTotal.Value(); got != 1 {
		t.Fatalf("retries = %f, want 1", got)
	}
	if got := m.SubmissionLatency.Count(); got != 3 {
		t.Fatalf("latency observations = %d, want 3", got)
	}
	if got := m.InFlight.Value(); got != 1 {
		t.Fatalf("in flight = %f, want 1", got)
	}
}

func TestFactoryMetricsSeriesIsStable(t *testing.T) {
	m := NewFactoryMetrics(gu.NewMetricsCollector("datapipeline-test"))

	a := m.Series(m.RetriesTotal, map[string]string{"kind": "account"})
	b := m.Series(m.RetriesTotal, map[string]string{"kind": "account"})
	if a != b {
		t.Fatal("same labels should return the same series")
	}
	if m.Series(m.RetriesTotal, map[string]string{"kind": "deposit"}) == a {
		t.Fatal("different labels should return a different series")
	}
}

func TestRecordersFanOut(t *testing.T) {
	prom := NewMetrics(prometheus.NewRegistry())
	fm := NewFactoryMetrics(gu.NewMetricsCollector("datapipeline-test"))
	rs := Recorders{prom, fm}

	rs.RecordRetry("wallet_balance")
	rs.RecordSubmission("wallet_balance", "success", 0.1)

	if got := testutil.ToFloat64(prom.RetriesTotal.WithLabelValues("wallet_balance")); got != 1 {
		t.Fatalf("prometheus retries = %f, want 1", got)
	}
	if got := fm.RetriesTotal.Value(); got != 1 {
		t.Fatalf("go-utils retries = %f, want 1", got)
	}
	if got := fm.SubmissionsTotal.Value(); got != 1 {
		t.Fatalf("go-utils submissions = %f, want 1", got)
	}

	// An empty fan-out is a no-op.
	Recorders(nil).AddInFlight(1)
}
