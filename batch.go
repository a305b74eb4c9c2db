package datapipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/event"
	"github.com/xraph/datapipeline/id"
	"github.com/xraph/datapipeline/scope"
)

// Batch groups records of several categories for SendBatch. A nil slice
// means the category is absent; a non-nil empty slice is submitted as an
// empty list.
type Batch struct {
	Customers           []event.CustomerProfile
	ExtendedAttributes  []event.ExtendedAttributes
	AccountEvents       []event.AccountEvent
	DepositEvents       []event.DepositEvent
	WithdrawEvents      []event.WithdrawEvent
	GamingEvents        []event.GamingActivityEvent
	ReferFriendEvents   []event.ReferFriendEvent
	WalletBalanceEvents []event.WalletBalanceEvent
}

// BatchEnvelope aggregates the envelopes of a batch. Only the categories
// present in the Batch have an envelope.
type BatchEnvelope struct {
	// Success is true when every issued call succeeded, including when no
	// category was present.
	Success bool `json:"success"`

	// BatchID correlates the calls of the batch in logs.
	BatchID string `json:"batchId"`

	Customers           *Envelope `json:"customers,omitempty"`
	ExtendedAttributes  *Envelope `json:"extendedAttributes,omitempty"`
	AccountEvents       *Envelope `json:"accountEvents,omitempty"`
	DepositEvents       *Envelope `json:"depositEvents,omitempty"`
	WithdrawEvents      *Envelope `json:"withdrawEvents,omitempty"`
	GamingEvents        *Envelope `json:"gamingEvents,omitempty"`
	ReferFriendEvents   *Envelope `json:"referFriendEvents,omitempty"`
	WalletBalanceEvents *Envelope `json:"walletBalanceEvents,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Envelope returns the envelope recorded for kind, or nil if the category
// was absent.
func (b *BatchEnvelope) Envelope(kind catalog.Kind) *Envelope {
	if slot := b.slot(kind); slot != nil {
		return *slot
	}
	return nil
}

func (b *BatchEnvelope) slot(kind catalog.Kind) **Envelope {
	switch kind {
	case catalog.KindCustomer:
		return &b.Customers
	case catalog.KindExtendedAttributes:
		return &b.ExtendedAttributes
	case catalog.KindAccount:
		return &b.AccountEvents
	case catalog.KindDeposit:
		return &b.DepositEvents
	case catalog.KindWithdraw:
		return &b.WithdrawEvents
	case catalog.KindGamingActivity:
		return &b.GamingEvents
	case catalog.KindReferFriend:
		return &b.ReferFriendEvents
	case catalog.KindWalletBalance:
		return &b.WalletBalanceEvents
	default:
		return nil
	}
}

type batchCall struct {
	kind catalog.Kind
	run  func(context.Context) *Envelope
}

// calls lists the present categories in catalog.Kinds order.
func (c *Client) calls(b Batch) []batchCall {
	var out []batchCall
	add := func(kind catalog.Kind, present bool, run func(context.Context) *Envelope) {
		if present {
			out = append(out, batchCall{kind: kind, run: run})
		}
	}
	add(catalog.KindCustomer, b.Customers != nil, func(ctx context.Context) *Envelope {
		return c.SendCustomerProfile(ctx, event.Many(b.Customers...))
	})
	add(catalog.KindExtendedAttributes, b.ExtendedAttributes != nil, func(ctx context.Context) *Envelope {
		return c.SendExtendedAttributes(ctx, event.Many(b.ExtendedAttributes...))
	})
	add(catalog.KindAccount, b.AccountEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendAccountEvent(ctx, event.Many(b.AccountEvents...))
	})
	add(catalog.KindDeposit, b.DepositEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendDepositEvent(ctx, event.Many(b.DepositEvents...))
	})
	add(catalog.KindWithdraw, b.WithdrawEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendWithdrawEvent(ctx, event.Many(b.WithdrawEvents...))
	})
	add(catalog.KindGamingActivity, b.GamingEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendGamingActivityEvent(ctx, event.Many(b.GamingEvents...))
	})
	add(catalog.KindReferFriend, b.ReferFriendEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendReferFriendEvent(ctx, event.Many(b.ReferFriendEvents...))
	})
	add(catalog.KindWalletBalance, b.WalletBalanceEvents != nil, func(ctx context.Context) *Envelope {
		return c.SendWalletBalanceEvent(ctx, event.Many(b.WalletBalanceEvents...))
	})
	return out
}

// SendBatch submits each present category as its own call and aggregates
// the envelopes. Categories are independent: a failure in one neither
// stops nor retries the others. With WithBatchConcurrency the calls run in
// parallel without a shared cancellation.
func (c *Client) SendBatch(ctx context.Context, b Batch) *BatchEnvelope {
	batchID := id.NewBatchID().String()
	ctx = scope.Restore(ctx, batchID)
	calls := c.calls(b)
	results := make([]*Envelope, len(calls))

	if c.batchConcurrency > 1 && len(calls) > 1 {
		var g errgroup.Group
		g.SetLimit(c.batchConcurrency)
		for i, call := range calls {
			g.Go(func() error {
				results[i] = call.run(ctx)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, call := range calls {
			results[i] = call.run(ctx)
		}
	}

	out := &BatchEnvelope{
		Success:   true,
		BatchID:   batchID,
		Timestamp: time.Now().UTC(),
	}
	failed := 0
	for i, call := range calls {
		*out.slot(call.kind) = results[i]
		if !results[i].Success {
			out.Success = false
			failed++
		}
	}

	c.logger.InfoContext(ctx, "batch submitted",
		"batch_id", batchID,
		"categories", len(calls),
		"failed", failed,
	)
	return out
}
