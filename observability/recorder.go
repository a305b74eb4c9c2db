package observability

// Recorder receives the observations made while submitting events.
// *Metrics and *FactoryMetrics implement it.
type Recorder interface {
	RecordSubmission(kind, outcome string, latencySeconds float64)
	RecordAttempt(kind string, statusCode int)
	RecordRetry(kind string)
	AddInFlight(delta float64)
}

// Recorders fans every observation out to each of its members.
type Recorders []Recorder

func (rs Recorders) RecordSubmission(kind, outcome string, latencySeconds float64) {
	for _, r := range rs {
		r.RecordSubmission(kind, outcome, latencySeconds)
	}
}

func (rs Recorders) RecordAttempt(kind string, statusCode int) {
	for _, r := range rs {
		r.RecordAttempt(kind, statusCode)
	}
}

func (rs Recorders) RecordRetry(kind string) {
	for _, r := range rs {
		r.RecordRetry(kind)
	}
}

func (rs Recorders) AddInFlight(delta float64) {
	for _, r := range rs {
		r.AddInFlight(delta)
	}
}
