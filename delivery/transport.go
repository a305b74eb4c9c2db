package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xraph/datapipeline/observability"
	"github.com/xraph/datapipeline/ratelimit"
)

// Policy holds the per-call retry and timeout settings. It is taken from
// the client configuration snapshot of each call.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// RetryBaseDelay is multiplied by the retry number to get the backoff.
	RetryBaseDelay time.Duration

	// Timeout bounds each individual attempt.
	Timeout time.Duration

	// RateLimit is the per-path request rate; 0 disables limiting.
	RateLimit int
}

// TransportConfig holds the optional collaborators of a Transport.
type TransportConfig struct {
	Client  *http.Client
	Timeout time.Duration
	Limiter *ratelimit.Limiter
	Metrics observability.Recorder
	Tracer  *observability.Tracer
}

// Transport wraps HTTP delivery with bounded retry and linear backoff.
// It holds no per-call state and is safe for concurrent use.
type Transport struct {
	sender  *Sender
	limiter *ratelimit.Limiter
	metrics observability.Recorder
	tracer  *observability.Tracer
	logger  *slog.Logger
}

// NewTransport creates a transport.
func NewTransport(cfg TransportConfig, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		sender:  NewSender(cfg.Client, cfg.Timeout),
		limiter: cfg.Limiter,
		metrics: cfg.Metrics,
		tracer:  cfg.Tracer,
		logger:  logger,
	}
}

// Do runs req until it gets a terminal response, exhausts the attempt
// budget, or ctx ends. Cancellation during a backoff, a rate-limit wait or
// an attempt that fails because of it yields ErrInterrupted.
//
// On exhaustion after a 5xx the last response is returned as the result,
// not as an error. After a final transport failure, Result.Err holds that
// failure and StatusCode is 0.
func (t *Transport) Do(ctx context.Context, req Request, p Policy) Result {
	retrier := NewRetrier(p.MaxRetries, p.RetryBaseDelay)
	start := time.Now()

	var last Attempt
	for n := 1; ; n++ {
		if n > 1 {
			delay := retrier.Backoff(n - 1)
			if t.metrics != nil {
				t.metrics.RecordRetry(req.Kind)
			}
			t.logger.WarnContext(ctx, "retrying request",
				"kind", req.Kind, "attempt", n, "delay", delay,
				"last_status", last.StatusCode, "last_error", errString(last.Err))

			if err := sleep(ctx, delay); err != nil {
				return t.interrupted(ctx, req, n-1, start, err)
			}
		}

		if t.limiter != nil {
			if err := t.limiter.Wait(ctx, req.Path, p.RateLimit); err != nil {
				return t.interrupted(ctx, req, n-1, start, err)
			}
		}

		last = t.attempt(ctx, req, p.Timeout, n)
		if last.Err != nil && ctx.Err() != nil {
			return t.interrupted(ctx, req, n, start, ctx.Err())
		}

		switch retrier.Decide(last, n) {
		case Done, Exhausted:
			return Result{
				StatusCode: last.StatusCode,
				Body:       last.Body,
				Err:        last.Err,
				Attempts:   n,
				Latency:    time.Since(start),
			}
		case Retry:
		}
	}
}

// attempt performs and records attempt number n.
func (t *Transport) attempt(ctx context.Context, req Request, timeout time.Duration, n int) Attempt {
	var a Attempt
	if t.tracer != nil {
		spanCtx, span := t.tracer.StartAttemptSpan(ctx, n)
		a = t.sender.Send(spanCtx, req, timeout)
		t.tracer.EndAttemptSpan(span, a.StatusCode, a.Err)
	} else {
		a = t.sender.Send(ctx, req, timeout)
	}

	if t.metrics != nil {
		t.metrics.RecordAttempt(req.Kind, a.StatusCode)
	}
	t.logger.DebugContext(ctx, "attempt finished",
		"kind", req.Kind, "method", req.Method, "path", req.Path, "attempt", n,
		"status", a.StatusCode, "latency_ms", a.Latency.Milliseconds(), "error", errString(a.Err))
	return a
}

func (t *Transport) interrupted(ctx context.Context, req Request, attempts int, start time.Time, cause error) Result {
	err := fmt.Errorf("%w: %w", ErrInterrupted, cause)
	t.logger.WarnContext(ctx, "request interrupted",
		"kind", req.Kind, "attempts", attempts, "error", err)
	return Result{
		Err:      err,
		Attempts: attempts,
		Latency:  time.Since(start),
	}
}

// sleep blocks for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
