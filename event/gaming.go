package event

import (
	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// GamingActivityEvent records bets, rounds, bonuses and tournament activity.
type GamingActivityEvent struct {
	Header
	GameID         string   `json:"game_id,omitempty"`
	GameName       string   `json:"game_name,omitempty"`
	GameProvider   string   `json:"game_provider,omitempty"`
	GameCategory   string   `json:"game_category,omitempty"`
	BetAmount      *float64 `json:"bet_amount,omitempty"`
	WinAmount      *float64 `json:"win_amount,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	Device         string   `json:"device,omitempty"`
	SessionID      string   `json:"session_id,omitempty"`
	RoundID        string   `json:"round_id,omitempty"`
	AffiliateID    string   `json:"affiliate_id,omitempty"`
	PartnerID      string   `json:"partner_id,omitempty"`
	CampaignCode   string   `json:"campaign_code,omitempty"`
	BonusUsed      *bool    `json:"bonus_used,omitempty"`
	FreeSpinsUsed  *int     `json:"free_spins_used,omitempty"`
	JackpotAmount  *float64 `json:"jackpot_amount,omitempty"`
	TournamentID   string   `json:"tournament_id,omitempty"`
	TournamentName string   `json:"tournament_name,omitempty"`
}

// NewGamingActivityEvent returns a GamingActivityEvent with the default
// category.
func NewGamingActivityEvent(h Header) GamingActivityEvent {
	return GamingActivityEvent{Header: h.withCategory(CategoryGaming)}
}

// Kind implements Record.
func (GamingActivityEvent) Kind() catalog.Kind { return catalog.KindGamingActivity }

// Validate checks e with the default vocabulary.
func (e GamingActivityEvent) Validate() validation.Result { return e.ValidateWith(nil) }

// ValidateWith implements Record.
func (e GamingActivityEvent) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := e.Header.fields(CategoryGaming, "for gaming activity events", validation.SetGamingEventName, vocab)
	fields = append(fields,
		validation.F("bet_amount", e.BetAmount, validation.NonNegative()),
		validation.F("win_amount", e.WinAmount, validation.NonNegative()),
		validation.F("currency", e.Currency, validation.Currency()),
		validation.F("device", e.Device, validation.OneOf(vocab.Values(validation.SetDevice)...)),
		validation.F("free_spins_used", e.FreeSpinsUsed, validation.NonNegative()),
		validation.F("jackpot_amount", e.JackpotAmount, validation.NonNegative()),
	)
	return validation.Check(fields...)
}
