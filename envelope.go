package datapipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/datapipeline/delivery"
)

// Envelope is the result of one submission.
//
// Success implies Error is empty. On failure HTTPStatus is the status of the
// last attempt, or 0 when no response was received.
type Envelope struct {
	Success    bool      `json:"success"`
	HTTPStatus int       `json:"httpStatus"`
	Data       any       `json:"data"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	// RequestID is the X-Request-ID sent with the call.
	RequestID string `json:"requestId,omitempty"`

	// Attempts is the number of HTTP attempts made.
	Attempts int `json:"attempts"`

	err error
}

// Err returns nil on success, otherwise an error wrapping one of the
// package sentinels.
func (e *Envelope) Err() error {
	if e == nil || e.Success {
		return nil
	}
	return e.err
}

// rejected builds the envelope of a call that failed before any network
// activity.
func rejected(err error) *Envelope {
	return &Envelope{
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
		err:       err,
	}
}

// envelopeFrom turns the final transport result into an envelope.
func envelopeFrom(res delivery.Result) *Envelope {
	env := &Envelope{
		HTTPStatus: res.StatusCode,
		Timestamp:  time.Now().UTC(),
		Attempts:   res.Attempts,
	}

	if res.Err != nil {
		env.HTTPStatus = 0
		env.Error = res.Err.Error()
		if errors.Is(res.Err, ErrInterrupted) {
			env.err = res.Err
		} else {
			env.err = fmt.Errorf("%w: %w", ErrTransport, res.Err)
		}
		return env
	}

	code := res.StatusCode
	if code < 200 || code >= 300 {
		env.Data = string(res.Body)
		env.Error = fmt.Sprintf("request failed with status %d", code)
		sentinel := ErrClient
		if code >= 500 {
			sentinel = ErrServer
		}
		env.err = fmt.Errorf("%w: status %d", sentinel, code)
		return env
	}

	data, err := parseBody(res.Body)
	if err != nil {
		env.Data = string(res.Body)
		env.Error = fmt.Sprintf("parse response (status %d): %v", code, err)
		env.err = fmt.Errorf("%w: %w", ErrResponseParse, err)
		return env
	}
	env.Success = true
	env.Data = data
	return env
}

// parseBody decodes a JSON body. An empty body decodes to nil.
func parseBody(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// outcome returns the metrics label of an envelope.
func outcome(env *Envelope) string {
	err := env.Err()
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInterrupted):
		return "interrupted"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrServer):
		return "server_error"
	case errors.Is(err, ErrClient):
		return "client_error"
	case errors.Is(err, ErrResponseParse):
		return "parse_error"
	default:
		return "rejected"
	}
}
