package event

import (
	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// WalletBalanceEvent is a snapshot of a player's wallet.
type WalletBalanceEvent struct {
	Header
	WalletType          string   `json:"wallet_type,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	CurrentCashBalance  *float64 `json:"current_cash_balance,omitempty"`
	CurrentBonusBalance *float64 `json:"current_bonus_balance,omitempty"`
	CurrentTotalBalance *float64 `json:"current_total_balance,omitempty"`
	BlockedAmount       *float64 `json:"blocked_amount,omitempty"`
}

// NewWalletBalanceEvent returns a WalletBalanceEvent with the default
// category.
func NewWalletBalanceEvent(h Header) WalletBalanceEvent {
	return WalletBalanceEvent{Header: h.withCategory(CategoryWalletBalance)}
}

// Kind implements Record.
func (WalletBalanceEvent) Kind() catalog.Kind { return catalog.KindWalletBalance }

// Validate checks e with the default vocabulary.
func (e WalletBalanceEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e WalletBalanceEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryWalletBalance, "for wallet balance events", validation.SetWalletBalanceEventName, vocab)
	fields = append(fields,
		validation.F("currency", e.Currency, validation.Currency()),
		validation.F("current_cash_balance", e.CurrentCashBalance, validation.NonNegative()),
		validation.F("current_bonus_balance", e.CurrentBonusBalance, validation.NonNegative()),
		validation.F("current_total_balance", e.CurrentTotalBalance, validation.NonNegative()),
		validation.F("blocked_amount", e.BlockedAmount, validation.NonNegative()),
	)
	return validation.Check(fields...)
}
