package event

import (
	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// AccountEvent records an account lifecycle change such as a registration
// or a login.
type AccountEvent struct {
	Header
	Device       string `json:"device,omitempty"`
	Status       string `json:"status,omitempty"`
	AffiliateID  string `json:"affiliate_id,omitempty"`
	PartnerID    string `json:"partner_id,omitempty"`
	CampaignCode string `json:"campaign_code,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// NewAccountEvent returns an AccountEvent with the default category.
func NewAccountEvent(h Header) AccountEvent {
	return AccountEvent{Header: h.withCategory(CategoryAccount)}
}

// Kind implements Record.
func (AccountEvent) Kind() catalog.Kind { return catalog.KindAccount }

// Validate checks e with the default vocabulary.
func (e AccountEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e AccountEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryAccount, "for account events", validation.SetAccountEventName, vocab)
	fields = append(fields,
		validation.F("device", e.Device, validation.OneOf(vocab.Values(validation.SetDevice)...)),
		validation.F("status", e.Status, validation.OneOf(vocab.Values(validation.SetAccountStatus)...)),
	)
	return validation.Check(fields...)
}
