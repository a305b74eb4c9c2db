package event

import (
	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// ReferFriendEvent records a referral and the reward attached to it.
type ReferFriendEvent struct {
	Header
	ReferralCodeUsed               string   `json:"referral_code_used,omitempty"`
	SuccessfulReferralConfirmation *bool    `json:"successful_referral_confirmation,omitempty"`
	RewardType                     string   `json:"reward_type,omitempty"`
	RewardClaimedStatus            string   `json:"reward_claimed_status,omitempty"`
	RefereeUserID                  string   `json:"referee_user_id,omitempty"`
	RefereeRegistrationDate        string   `json:"referee_registration_date,omitempty"`
	RefereeFirstDeposit            *float64 `json:"referee_first_deposit,omitempty"`
}

// NewReferFriendEvent returns a ReferFriendEvent with the default category.
func NewReferFriendEvent(h Header) ReferFriendEvent {
	return ReferFriendEvent{Header: h.withCategory(CategoryReferFriend)}
}

// Kind implements Record.
func (ReferFriendEvent) Kind() catalog.Kind { return catalog.KindReferFriend }

// Validate checks e with the default vocabulary.
func (e ReferFriendEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e ReferFriendEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryReferFriend, "for refer friend events", validation.SetReferFriendEventName, vocab)
	fields = append(fields,
		validation.F("reward_type", e.RewardType, validation.OneOf(vocab.Values(validation.SetRewardType)...)),
		validation.F("reward_claimed_status", e.RewardClaimedStatus,
			validation.OneOf(vocab.Values(validation.SetRewardClaimedStatus)...)),
		validation.F("referee_registration_date", e.RefereeRegistrationDate, validation.ISODateTime()),
		validation.F("referee_first_deposit", e.RefereeFirstDeposit, validation.NonNegative()),
	)
	return validation.Check(fields...)
}
