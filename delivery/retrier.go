package delivery

import "time"

// Decision is the outcome of evaluating an attempt.
type Decision int

const (
	// Done means the response is terminal, whether success or failure.
	Done Decision = iota

	// Retry means another attempt should be made after a backoff.
	Retry

	// Exhausted means the attempt was retryable but the budget is spent.
	Exhausted
)

// Retrier decides what to do after an attempt.
type Retrier struct {
	maxRetries int
	baseDelay  time.Duration
}

// NewRetrier creates a retrier allowing maxRetries retries after the first
// attempt, with linear backoff of baseDelay per retry.
func NewRetrier(maxRetries int, baseDelay time.Duration) *Retrier {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retrier{maxRetries: maxRetries, baseDelay: baseDelay}
}

// MaxAttempts returns the total attempt budget.
func (r *Retrier) MaxAttempts() int {
	return r.maxRetries + 1
}

// Decide determines what to do after attempt number n (1-based).
//
// Decision matrix:
//   - 1xx–4xx (any response below 500) → Done (4xx won't self-correct)
//   - 500–599 → Retry if attempts remain, else Exhausted
//   - 0 (connect failure, DNS, reset, timeout) → Retry if attempts remain, else Exhausted
func (r *Retrier) Decide(a Attempt, n int) Decision {
	if a.Err == nil && a.StatusCode > 0 && a.StatusCode < 500 {
		return Done
	}
	if n < r.MaxAttempts() {
		return Retry
	}
	return Exhausted
}

// Backoff returns the sleep before retry number retry (1-based):
// baseDelay * retry.
func (r *Retrier) Backoff(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	return r.baseDelay * time.Duration(retry)
}
