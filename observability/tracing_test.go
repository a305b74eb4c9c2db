package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewTracer(tp), exporter
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestSubmitSpan(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	ctx, span := tracer.StartSubmitSpan(context.Background(), "account", "POST", "/events/account", "req_1")
	_, attempt := tracer.StartAttemptSpan(ctx, 1)
	tracer.EndAttemptSpan(attempt, 200, nil)
	tracer.EndSubmitSpan(span, 200, 1, "")

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "datapipeline.attempt" || spans[1].Name != "datapipeline.submit" {
		t.Fatalf("unexpected span names %q, %q", spans[0].Name, spans[1].Name)
	}
	if spans[0].Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Fatal("attempt span should be a child of the submit span")
	}

	kind, ok := attr(spans[1].Attributes, "datapipeline.kind")
	if !ok || kind.AsString() != "account" {
		t.Fatalf("datapipeline.kind = %v (present %v)", kind.AsString(), ok)
	}
	attempts, ok := attr(spans[1].Attributes, "datapipeline.attempts")
	if !ok || attempts.AsInt64() != 1 {
		t.Fatalf("datapipeline.attempts = %d (present %v)", attempts.AsInt64(), ok)
	}
	if spans[1].Status.Code != codes.Unset {
		t.Fatalf("submit status = %v, want Unset", spans[1].Status.Code)
	}
}

func TestSpansRecordFailure(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	ctx, span := tracer.StartSubmitSpan(context.Background(), "deposit", "POST", "/events/deposit", "req_2")
	_, attempt := tracer.StartAttemptSpan(ctx, 1)
	tracer.EndAttemptSpan(attempt, 0, errors.New("connection refused"))
	tracer.EndSubmitSpan(span, 0, 1, "connection refused")

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error || spans[1].Status.Code != codes.Error {
		t.Fatalf("expected error status on both spans, got %v and %v", spans[0].Status.Code, spans[1].Status.Code)
	}
	if got := spans[1].Status.Description; got != "connection refused" {
		t.Fatalf("status description = %q", got)
	}
}

func TestNewTracerGlobalFallback(t *testing.T) {
	tracer := NewTracer(nil)
	_, span := tracer.StartAttemptSpan(context.Background(), 1)
	tracer.EndAttemptSpan(span, 200, nil)
}
