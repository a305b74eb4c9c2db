// Package id mints the request and batch identifiers sent in X-Request-ID
// and reported on envelopes. IDs are TypeIDs ("req_01h455vb...") so they
// sort by creation time.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Kind is the TypeID prefix naming what an ID identifies.
type Kind string

const (
	Request Kind = "req"
	Batch   Kind = "batch"
)

// ID is a generated identifier in "kind_suffix" form.
type ID string

func generate(kind Kind) ID {
	tid, err := typeid.Generate(string(kind))
	if err != nil {
		panic(fmt.Sprintf("id: generate %q: %v", kind, err))
	}
	return ID(tid.String())
}

// NewRequestID returns a fresh request ID.
func NewRequestID() ID { return generate(Request) }

// NewBatchID returns a fresh batch ID.
func NewBatchID() ID { return generate(Batch) }

// Parse checks that s is a well-formed ID of the given kind.
func Parse(s string, kind Kind) (ID, error) {
	tid, err := typeid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("id: parse %q: %w", s, err)
	}
	if got := Kind(tid.Prefix()); got != kind {
		return "", fmt.Errorf("id: %q is a %s id, want %s", s, got, kind)
	}
	return ID(s), nil
}

func (i ID) String() string { return string(i) }

// Kind returns the prefix of i, or "" for a malformed ID.
func (i ID) Kind() Kind {
	tid, err := typeid.Parse(string(i))
	if err != nil {
		return ""
	}
	return Kind(tid.Prefix())
}
