package datapipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/delivery"
	"github.com/xraph/datapipeline/event"
	"github.com/xraph/datapipeline/id"
	"github.com/xraph/datapipeline/scope"
	"github.com/xraph/datapipeline/signature"
)

// Header names sent with signed requests.
const (
	HeaderToken       = "x-optikpi-token"
	HeaderAccountID   = "x-optikpi-account-id"
	HeaderWorkspaceID = "x-optikpi-workspace-id"
	HeaderSignature   = "x-hmac-signature"
	HeaderAlgorithm   = "x-hmac-algorithm"
	HeaderRequestID   = "X-Request-ID"
)

// Submit serializes p, signs the bytes and posts them to the endpoint of
// kind. The payload must declare the same kind it is submitted under.
//
// The critical path:
//  1. Resolve the endpoint path from the catalog.
//  2. Encode the payload once; these bytes are signed and sent unchanged.
//  3. Check the bytes against the kind's schema, if schema validation is on.
//  4. Sign with the configuration snapshot taken for this call.
//  5. Deliver with retries and wrap the final result in an Envelope.
//
// Failures in steps 1 to 4 return an Envelope without network activity.
func (c *Client) Submit(ctx context.Context, kind catalog.Kind, p event.Submission) *Envelope {
	cfg := c.cfg.Load()

	def, err := c.catalog.Get(kind)
	if err != nil {
		return c.reject(ctx, kind, err)
	}

	if p == nil {
		return c.reject(ctx, kind, fmt.Errorf("%w: payload is empty", ErrSerialization))
	}
	if got := p.Kind(); got != kind {
		return c.reject(ctx, kind, fmt.Errorf("%w: %s payload cannot be submitted as %s", ErrPayloadValidationFailed, got, kind))
	}
	v := p.Value()
	if v == nil {
		return c.reject(ctx, kind, fmt.Errorf("%w: payload is empty", ErrSerialization))
	}
	body, err := event.Encode(v)
	if err != nil {
		return c.reject(ctx, kind, fmt.Errorf("%w: %w", ErrSerialization, err))
	}
	if bytes.Equal(body, []byte("null")) {
		return c.reject(ctx, kind, fmt.Errorf("%w: payload encodes to null", ErrSerialization))
	}

	if c.validator != nil && len(def.Schema) > 0 {
		if verr := c.validator.Validate(def.Schema, body); verr != nil {
			return c.reject(ctx, kind, fmt.Errorf("%w: %w", ErrPayloadValidationFailed, verr))
		}
	}

	sig, err := signature.Sign(body, cfg.identity())
	if err != nil {
		return c.reject(ctx, kind, fmt.Errorf("%w: %w", ErrConfiguration, err))
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set(HeaderToken, cfg.AuthToken)
	h.Set(HeaderAccountID, cfg.AccountID)
	h.Set(HeaderWorkspaceID, cfg.WorkspaceID)
	h.Set(HeaderSignature, sig)
	h.Set(HeaderAlgorithm, signature.Algorithm)

	return c.do(ctx, cfg, delivery.Request{
		Kind:   kind.String(),
		Method: http.MethodPost,
		URL:    cfg.endpoint(def.Path),
		Path:   def.Path,
		Header: h,
		Body:   body,
	})
}

// HealthCheck calls the unsigned status endpoint.
func (c *Client) HealthCheck(ctx context.Context) *Envelope {
	cfg := c.cfg.Load()
	h := make(http.Header)
	h.Set("Accept", "application/json")
	return c.do(ctx, cfg, delivery.Request{
		Kind:   "health",
		Method: http.MethodGet,
		URL:    cfg.endpoint(catalog.HealthPath),
		Path:   catalog.HealthPath,
		Header: h,
	})
}

// SendCustomerProfile submits customer profiles.
func (c *Client) SendCustomerProfile(ctx context.Context, p event.Payload[event.CustomerProfile]) *Envelope {
	return send(ctx, c, p)
}

// SendExtendedAttributes submits extended attribute lists.
func (c *Client) SendExtendedAttributes(ctx context.Context, p event.Payload[event.ExtendedAttributes]) *Envelope {
	return send(ctx, c, p)
}

// SendAccountEvent submits account events.
func (c *Client) SendAccountEvent(ctx context.Context, p event.Payload[event.AccountEvent]) *Envelope {
	return send(ctx, c, p)
}

// SendDepositEvent submits deposit events.
func (c *Client) SendDepositEvent(ctx context.Context, p event.Payload[event.DepositEvent]) *Envelope {
	return send(ctx, c, p)
}

// SendWithdrawEvent submits withdraw events.
func (c *Client) SendWithdrawEvent(ctx context.Context, p event.Payload[event.WithdrawEvent]) *Envelope {
	return send(ctx, c, p)
}

// SendGamingActivityEvent submits gaming activity events.
func (c *Client) SendGamingActivityEvent(ctx context.Context, p event.Payload[event.GamingActivityEvent]) *Envelope {
	return send(ctx, c, p)
}

// SendReferFriendEvent submits refer-friend events.
func (c *Client) SendReferFriendEvent(ctx context.Context, p event.Payload[event.ReferFriendEvent]) *Envelope {
	return send(ctx, c, p)
}

// SendWalletBalanceEvent submits wallet balance events.
func (c *Client) SendWalletBalanceEvent(ctx context.Context, p event.Payload[event.WalletBalanceEvent]) *Envelope {
	return send(ctx, c, p)
}

func send[T event.Record](ctx context.Context, c *Client, p event.Payload[T]) *Envelope {
	if c.validate {
		if res := p.ValidateWith(c.vocab); !res.IsValid {
			err := fmt.Errorf("%w: %s", ErrPayloadValidationFailed, strings.Join(res.Errors, "; "))
			return c.reject(ctx, p.Kind(), err)
		}
	}
	return c.Submit(ctx, p.Kind(), p)
}

// UpdateConfig validates cfg and swaps it in as a whole. Calls already in
// flight keep the snapshot they started with. On error the current
// configuration stays in place.
func (c *Client) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg.Store(&cfg)
	c.logger.Info("configuration updated", "config", cfg)
	return nil
}

// Config returns a copy of the current configuration. Use Config.Masked or
// log it directly to keep the token out of output.
func (c *Client) Config() Config {
	return *c.cfg.Load()
}

// Catalog returns the endpoint catalog.
func (c *Client) Catalog() *catalog.Catalog {
	return c.catalog
}

// do delivers req and records the outcome.
func (c *Client) do(ctx context.Context, cfg *Config, req delivery.Request) *Envelope {
	requestID := id.NewRequestID().String()
	req.Header.Set("User-Agent", delivery.UserAgent)
	req.Header.Set(HeaderRequestID, requestID)

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSubmitSpan(ctx, req.Kind, req.Method, req.Path, requestID)
	}
	c.metrics.AddInFlight(1)
	defer c.metrics.AddInFlight(-1)

	res := c.transport.Do(ctx, req, cfg.policy())
	env := envelopeFrom(res)
	env.RequestID = requestID

	if span != nil {
		c.tracer.EndSubmitSpan(span, env.HTTPStatus, env.Attempts, env.Error)
	}
	c.record(ctx, req.Kind, env, res.Latency)
	return env
}

// reject returns the envelope of a call stopped before the network.
func (c *Client) reject(ctx context.Context, kind catalog.Kind, err error) *Envelope {
	env := rejected(err)
	c.record(ctx, kind.String(), env, 0)
	return env
}

func (c *Client) record(ctx context.Context, kind string, env *Envelope, latency time.Duration) {
	c.metrics.RecordSubmission(kind, outcome(env), latency.Seconds())
	logger := c.logger
	if batchID := scope.Capture(ctx); batchID != "" {
		logger = logger.With("batch_id", batchID)
	}
	if !env.Success {
		logger.ErrorContext(ctx, "submission failed",
			"kind", kind,
			"request_id", env.RequestID,
			"status", env.HTTPStatus,
			"attempts", env.Attempts,
			"error", env.Err(),
		)
		return
	}
	logger.DebugContext(ctx, "submission succeeded",
		"kind", kind,
		"request_id", env.RequestID,
		"status", env.HTTPStatus,
		"attempts", env.Attempts,
		"latency_ms", latency.Milliseconds(),
	)
}
