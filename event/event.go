// Package event defines the records accepted by the ingestion API, one type
// per category, and Payload, the single-item-or-list wrapper the client
// submits.
//
// Struct field order is the wire order: records are serialized with
// encoding/json and optional fields carry omitempty so absent values are
// left out instead of being sent as null. Numeric and boolean optional
// fields are pointers so that zero can be sent explicitly.
package event

import (
	"fmt"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// Default event_category values.
const (
	CategoryAccount       = "Account"
	CategoryDeposit       = "Deposit"
	CategoryWithdraw      = "Withdraw"
	CategoryGaming        = "Gaming"
	CategoryReferFriend   = "Refer Friend"
	CategoryWalletBalance = "Wallet Balance"
)

// Submission is a payload bound to the kind it is submitted under.
// Payload implements it; custom kinds registered in a catalog can supply
// their own implementation.
type Submission interface {
	// Kind returns the category of the payload.
	Kind() catalog.Kind

	// Value returns what is serialized, or nil when there is nothing to send.
	Value() any
}

// Record is implemented by every event type.
type Record interface {
	// Kind returns the category the record is submitted under.
	Kind() catalog.Kind

	// ValidateWith checks the record using vocab for enumerated fields. A
	// nil vocab uses validation.DefaultVocabulary.
	ValidateWith(vocab *validation.Vocabulary) validation.Result
}

// Ptr returns a pointer to v, for filling optional numeric and boolean
// fields.
func Ptr[T any](v T) *T { return &v }

// Header holds the fields shared by all event records. Embedded first, it
// serializes ahead of the record's own fields.
type Header struct {
	AccountID     string `json:"account_id"`
	WorkspaceID   string `json:"workspace_id"`
	UserID        string `json:"user_id"`
	EventCategory string `json:"event_category,omitempty"`
	EventName     string `json:"event_name"`
	EventID       string `json:"event_id"`
	EventTime     string `json:"event_time"`
}

// withCategory sets the category when the caller left it empty.
func (h Header) withCategory(category string) Header {
	if h.EventCategory == "" {
		h.EventCategory = category
	}
	return h
}

// fields returns the rule table for the header. names is the vocabulary
// key of the accepted event names.
func (h Header) fields(category, context, names string, vocab *validation.Vocabulary) []validation.Field {
	return []validation.Field{
		validation.F("account_id", h.AccountID, validation.Required()),
		validation.F("workspace_id", h.WorkspaceID, validation.Required()),
		validation.F("user_id", h.UserID, validation.Required()),
		validation.F("event_category", h.EventCategory, validation.Required(), validation.Equals(category, context)),
		validation.F("event_name", h.EventName, validation.Required(), validation.OneOf(vocab.Values(names)...)),
		validation.F("event_id", h.EventID, validation.Required()),
		validation.F("event_time", h.EventTime, validation.Required(), validation.ISODateTime()),
	}
}

// identity returns the rule table for records without an event header.
func identity(accountID, workspaceID, userID string) []validation.Field {
	return []validation.Field{
		validation.F("account_id", accountID, validation.Required()),
		validation.F("workspace_id", workspaceID, validation.Required()),
		validation.F("user_id", userID, validation.Required()),
	}
}

// Payload is a single record or a homogeneous list of records of one type.
// The zero value holds nothing.
type Payload[T Record] struct {
	items []T
	list  bool
}

// One wraps a single record; it serializes as a JSON object.
func One[T Record](item T) Payload[T] {
	return Payload[T]{items: []T{item}}
}

// Many wraps a list of records; it serializes as a JSON array, even with
// one element.
func Many[T Record](items ...T) Payload[T] {
	if items == nil {
		items = []T{}
	}
	return Payload[T]{items: items, list: true}
}

// Kind returns the category of T.
func (p Payload[T]) Kind() catalog.Kind {
	var zero T
	return zero.Kind()
}

// Len returns the number of records.
func (p Payload[T]) Len() int { return len(p.items) }

// IsList reports whether the payload serializes as an array.
func (p Payload[T]) IsList() bool { return p.list }

// Items returns the wrapped records.
func (p Payload[T]) Items() []T { return p.items }

// Value returns what is serialized: the record for One, the slice for Many
// and nil for the zero Payload.
func (p Payload[T]) Value() any {
	switch {
	case p.list:
		return p.items
	case len(p.items) == 1:
		return p.items[0]
	default:
		return nil
	}
}

// Validate checks every record with the default vocabulary.
func (p Payload[T]) Validate() validation.Result {
	return p.ValidateWith(nil)
}

// ValidateWith checks every record. Errors of list items are prefixed with
// their index.
func (p Payload[T]) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	res := validation.Check()
	if !p.list {
		for _, item := range p.items {
			res.Append("", item.ValidateWith(vocab))
		}
		return res
	}
	for i, item := range p.items {
		res.Append(fmt.Sprintf("item %d", i), item.ValidateWith(vocab))
	}
	return res
}
