// Package scope captures and restores call correlation data from context.
// SendBatch restores its batch ID into the context of every category call,
// and submission logs capture it so the calls of one batch can be grouped.
package scope

import "context"

type batchKey struct{}

// Capture extracts the batch ID from the context.
// Returns an empty string outside a batch.
func Capture(ctx context.Context) (batchID string) {
	batchID, _ = ctx.Value(batchKey{}).(string)
	return batchID
}

// Restore injects the batch ID into the context.
// Returns the context unchanged when batchID is empty.
func Restore(ctx context.Context, batchID string) context.Context {
	if batchID == "" {
		return ctx
	}
	return context.WithValue(ctx, batchKey{}, batchID)
}
