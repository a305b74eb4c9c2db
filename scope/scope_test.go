package scope_test

import (
	"context"
	"testing"

	"github.com/xraph/datapipeline/scope"
)

func TestCaptureOutsideBatch(t *testing.T) {
	if got := scope.Capture(context.Background()); got != "" {
		t.Fatalf("Capture() = %q, want empty", got)
	}
}

func TestRestoreCapture(t *testing.T) {
	ctx := scope.Restore(context.Background(), "batch_01h")
	if got := scope.Capture(ctx); got != "batch_01h" {
		t.Fatalf("Capture() = %q", got)
	}
}

func TestRestoreEmptyKeepsContext(t *testing.T) {
	parent := context.Background()
	if scope.Restore(parent, "") != parent {
		t.Fatal("Restore with empty ID should return the parent context")
	}
}
