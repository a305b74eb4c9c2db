package event

import (
	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// DepositEvent records a deposit attempt and its outcome.
type DepositEvent struct {
	Header
	Amount              *float64 `json:"amount,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	PaymentMethod       string   `json:"payment_method,omitempty"`
	TransactionID       string   `json:"transaction_id,omitempty"`
	Status              string   `json:"status,omitempty"`
	Device              string   `json:"device,omitempty"`
	AffiliateID         string   `json:"affiliate_id,omitempty"`
	PartnerID           string   `json:"partner_id,omitempty"`
	CampaignCode        string   `json:"campaign_code,omitempty"`
	Reason              string   `json:"reason,omitempty"`
	BonusAmount         *float64 `json:"bonus_amount,omitempty"`
	FeeAmount           *float64 `json:"fee_amount,omitempty"`
	PaymentProviderID   string   `json:"payment_provider_id,omitempty"`
	PaymentProviderName string   `json:"payment_provider_name,omitempty"`
	Fees                *float64 `json:"fees,omitempty"`
	NetAmount           *float64 `json:"net_amount,omitempty"`
}

// NewDepositEvent returns a DepositEvent with the default category.
func NewDepositEvent(h Header) DepositEvent {
	return DepositEvent{Header: h.withCategory(CategoryDeposit)}
}

// Kind implements Record.
func (DepositEvent) Kind() catalog.Kind { return catalog.KindDeposit }

// Validate checks e with the default vocabulary.
func (e DepositEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e DepositEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryDeposit, "for deposit events", validation.SetDepositEventName, vocab)
	fields = append(fields,
		validation.F("amount", e.Amount, validation.Required(), validation.Positive()),
		validation.F("currency", e.Currency, validation.Currency()),
		validation.F("payment_method", e.PaymentMethod, validation.Required(),
			validation.OneOf(vocab.Values(validation.SetPaymentMethod)...)),
		validation.F("transaction_id", e.TransactionID, validation.Required()),
		validation.F("status", e.Status, validation.OneOf(vocab.Values(validation.SetDepositStatus)...)),
		validation.F("device", e.Device, validation.OneOf(vocab.Values(validation.SetDevice)...)),
		validation.F("bonus_amount", e.BonusAmount, validation.NonNegative()),
		validation.F("fee_amount", e.FeeAmount, validation.NonNegative()),
		validation.F("fees", e.Fees, validation.NonNegative()),
	)
	return validation.Check(fields...)
}

// WithdrawEvent records a withdrawal request and its outcome.
type WithdrawEvent struct {
	Header
	Amount           *float64 `json:"amount,omitempty"`
	PaymentMethod    string   `json:"payment_method,omitempty"`
	TransactionID    string   `json:"transaction_id,omitempty"`
	Status           string   `json:"status,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Fees             *float64 `json:"fees,omitempty"`
	NetAmount        *float64 `json:"net_amount,omitempty"`
	WithdrawalReason string   `json:"withdrawal_reason,omitempty"`
	ProcessingTime   string   `json:"processing_time,omitempty"`
	FailureReason    string   `json:"failure_reason,omitempty"`
}

// NewWithdrawEvent returns a WithdrawEvent with the default category.
func NewWithdrawEvent(h Header) WithdrawEvent {
	return WithdrawEvent{Header: h.withCategory(CategoryWithdraw)}
}

// Kind implements Record.
func (WithdrawEvent) Kind() catalog.Kind { return catalog.KindWithdraw }

// Validate checks e with the default vocabulary.
func (e WithdrawEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e WithdrawEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryWithdraw, "for withdraw events", validation.SetWithdrawEventName, vocab)
	fields = append(fields,
		validation.F("amount", e.Amount, validation.Required(), validation.Positive()),
		validation.F("payment_method", e.PaymentMethod, validation.Required(),
			validation.OneOf(vocab.Values(validation.SetPaymentMethod)...)),
		validation.F("transaction_id", e.TransactionID, validation.Required()),
		validation.F("status", e.Status, validation.OneOf(vocab.Values(validation.SetWithdrawStatus)...)),
		validation.F("currency", e.Currency, validation.Currency()),
		validation.F("fees", e.Fees, validation.NonNegative()),
		validation.F("net_amount", e.NetAmount, validation.NonNegative()),
	)
	return validation.Check(fields...)
}
