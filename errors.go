package datapipeline

import (
	"errors"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/delivery"
)

// Sentinel errors returned by Client operations. Envelope.Err wraps one of
// them, so callers can classify failures with errors.Is.
var (
	// ErrConfiguration is returned when credentials, the base URL or the
	// retry settings are missing or invalid.
	ErrConfiguration = errors.New("datapipeline: invalid configuration")

	// ErrSerialization is returned when a payload cannot be encoded as JSON.
	// Nothing is sent.
	ErrSerialization = errors.New("datapipeline: payload serialization failed")

	// ErrPayloadValidationFailed is returned when opt-in record or schema
	// validation rejects a payload. Nothing is sent.
	ErrPayloadValidationFailed = errors.New("datapipeline: payload validation failed")

	// ErrTransport is returned when no response was received on the last
	// attempt.
	ErrTransport = errors.New("datapipeline: transport failure")

	// ErrServer is returned when retries ran out on a 5xx response.
	ErrServer = errors.New("datapipeline: server error")

	// ErrClient is returned for a non-2xx response below 500.
	ErrClient = errors.New("datapipeline: request rejected")

	// ErrResponseParse is returned when a 2xx response body is not valid JSON.
	ErrResponseParse = errors.New("datapipeline: response is not valid JSON")

	// ErrInterrupted is returned when the context ends while a call waits to
	// retry or for a rate limit token.
	ErrInterrupted = delivery.ErrInterrupted

	// ErrUnknownKind is returned by Submit for a kind the catalog does not
	// know.
	ErrUnknownKind = catalog.ErrUnknownKind
)
