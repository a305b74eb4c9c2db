// Package datapipeline is a client for the Optikpi data pipeline ingestion
// API.
//
// The client serializes customer profiles and player events to JSON, signs
// the exact bytes with an HMAC-SHA256 key derived from the account
// credentials, and posts them with bounded retries. Every call returns an
// Envelope; ordinary failures are reported there rather than as Go errors.
//
// Key features:
//   - Typed records for eight categories with declarative validation
//   - Single-item or list payloads through event.Payload
//   - Linear-backoff retries on 5xx and transport failures
//   - Atomic configuration swaps with UpdateConfig and file hot reload
//   - Optional JSON Schema checks, rate limiting, Prometheus metrics and
//     OpenTelemetry tracing
//
// Quick start:
//
//	c, err := datapipeline.New(
//	    datapipeline.WithCredentials(token, accountID, workspaceID),
//	    datapipeline.WithBaseURL("https://api.example.com/apigw/ingest"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	evt := event.NewAccountEvent(event.Header{
//	    AccountID:   accountID,
//	    WorkspaceID: workspaceID,
//	    UserID:      "user123456",
//	    EventName:   "Player Registration",
//	    EventID:     "evt_123456789",
//	    EventTime:   "2024-01-15T10:30:00Z",
//	})
//
//	env := c.SendAccountEvent(ctx, event.One(evt))
//	if !env.Success {
//	    log.Println(env.Error)
//	}
package datapipeline
