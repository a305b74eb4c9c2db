// Package delivery sends requests to the ingestion API with bounded retries.
//
// A logical call moves through ATTEMPT(n) → {done, retry → ATTEMPT(n+1),
// exhausted, interrupted}. Sender performs one HTTP attempt, Retrier
// classifies its outcome and computes the backoff, and Transport runs the
// loop.
package delivery

import (
	"errors"
	"net/http"
	"time"
)

// ErrInterrupted is returned when the caller's context ends while the
// transport is waiting to retry.
var ErrInterrupted = errors.New("delivery: retry interrupted")

// Request is one logical call. Body is sent byte-for-byte on every attempt.
type Request struct {
	// Kind labels metrics and logs (e.g. "account", "health").
	Kind string

	// Method is the HTTP method.
	Method string

	// URL is the absolute request URL.
	URL string

	// Path is the endpoint path, used as the rate limit key.
	Path string

	// Header holds the headers sent on every attempt.
	Header http.Header

	// Body is the exact request body, or nil for no body.
	Body []byte
}

// Attempt holds the outcome of a single HTTP attempt.
type Attempt struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	Body       []byte
	Err        error
	Latency    time.Duration
}

// Result holds the final outcome of a logical call.
type Result struct {
	// StatusCode is the status of the last response, or 0 when the last
	// attempt got no response or the call was interrupted.
	StatusCode int

	// Body is the body of the last response.
	Body []byte

	// Err is set when the call ended without a response: the last attempt
	// was a transport failure, or the call was interrupted.
	Err error

	// Attempts is the number of HTTP attempts made.
	Attempts int

	// Latency covers all attempts and backoff sleeps.
	Latency time.Duration
}
