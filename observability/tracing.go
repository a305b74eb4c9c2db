// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for submissions and their HTTP attempts.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/datapipeline"

// Tracer provides OpenTelemetry tracing for submissions.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from tp, or from the global provider when tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: tp.Tracer(tracerName),
	}
}

// StartSubmitSpan starts the span covering one logical submission.
func (t *Tracer) StartSubmitSpan(ctx context.Context, kind, method, path, requestID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "datapipeline.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("datapipeline.kind", kind),
			attribute.String("datapipeline.request_id", requestID),
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
}

// EndSubmitSpan ends a submission span with its final outcome.
func (t *Tracer) EndSubmitSpan(span trace.Span, statusCode, attempts int, errMsg string) {
	span.SetAttributes(
		attribute.Int("http.response.status_code", statusCode),
		attribute.Int("datapipeline.attempts", attempts),
	)
	if errMsg != "" {
		span.SetStatus(codes.Error, errMsg)
	}
	span.End()
}

// StartAttemptSpan starts a child span for a single HTTP attempt.
func (t *Tracer) StartAttemptSpan(ctx context.Context, attempt int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "datapipeline.attempt",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("datapipeline.attempt", attempt)),
	)
}

// EndAttemptSpan ends an attempt span.
func (t *Tracer) EndAttemptSpan(span trace.Span, statusCode int, err error) {
	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
