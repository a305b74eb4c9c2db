package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const maxResponseBody = 10 << 20 // 10MB cap on response bodies

// UserAgent is sent on every request.
const UserAgent = "Optikpi-DataPipeline-SDK-Go/1.0.0"

// Sender performs single HTTP attempts.
type Sender struct {
	client *http.Client
}

// NewSender creates a sender. A nil client gets a dedicated transport whose
// dial and response-header waits are bounded by timeout.
func NewSender(client *http.Client, timeout time.Duration) *Sender {
	if client == nil {
		client = NewHTTPClient(timeout)
	}
	return &Sender{client: client}
}

// NewHTTPClient returns a client whose connect and response-header waits
// are bounded by timeout. The whole attempt is additionally bounded by the
// per-attempt context deadline set in Send.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.ResponseHeaderTimeout = timeout
	return &http.Client{Transport: tr}
}

// Send performs one attempt of req. A positive timeout bounds the whole
// attempt, including reading the response body.
func (s *Sender) Send(ctx context.Context, req Request, timeout time.Duration) Attempt {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Attempt{Err: fmt.Errorf("create request: %w", err)}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := s.client.Do(httpReq) //nolint:gosec // URL is the configured ingestion base URL.
	if err != nil {
		return Attempt{Err: err, Latency: time.Since(start)}
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	latency := time.Since(start)
	if readErr != nil {
		// A truncated response is treated like no response at all.
		return Attempt{
			Err:     fmt.Errorf("read response (status %d): %w", resp.StatusCode, readErr),
			Latency: latency,
		}
	}

	return Attempt{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Latency:    latency,
	}
}
