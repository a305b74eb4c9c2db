package event

import (
	"encoding/json"
	"regexp"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/validation"
)

// CustomerProfile is the full profile of a player, including responsible
// gaming limits and verification state.
type CustomerProfile struct {
	AccountID                 string         `json:"account_id"`
	WorkspaceID               string         `json:"workspace_id"`
	UserID                    string         `json:"user_id"`
	Username                  string         `json:"username,omitempty"`
	FullName                  string         `json:"full_name,omitempty"`
	FirstName                 string         `json:"first_name,omitempty"`
	LastName                  string         `json:"last_name,omitempty"`
	DateOfBirth               string         `json:"date_of_birth,omitempty"`
	Email                     string         `json:"email,omitempty"`
	PhoneNumber               string         `json:"phone_number,omitempty"`
	Gender                    string         `json:"gender,omitempty"`
	Country                   string         `json:"country,omitempty"`
	City                      string         `json:"city,omitempty"`
	Language                  string         `json:"language,omitempty"`
	Currency                  string         `json:"currency,omitempty"`
	MarketingEmailPreference  *bool          `json:"marketing_email_preference,omitempty"`
	NotificationsPreference   *bool          `json:"notifications_preference,omitempty"`
	Subscription              string         `json:"subscription,omitempty"`
	PrivacySettings           map[string]any `json:"privacy_settings,omitempty"`
	DepositLimits             map[string]any `json:"deposit_limits,omitempty"`
	LossLimits                map[string]any `json:"loss_limits,omitempty"`
	WageringLimits            map[string]any `json:"wagering_limits,omitempty"`
	SessionTimeLimits         map[string]any `json:"session_time_limits,omitempty"`
	CoolingOffPeriod          string         `json:"cooling_off_period,omitempty"`
	SelfExclusionPeriod       string         `json:"self_exclusion_period,omitempty"`
	RealityChecksNotification *bool          `json:"reality_checks_notification,omitempty"`
	AccountStatus             string         `json:"account_status,omitempty"`
	VIPStatus                 string         `json:"vip_status,omitempty"`
	LoyaltyProgramTiers       map[string]any `json:"loyalty_program_tiers,omitempty"`
	BonusAbuser               *bool          `json:"bonus_abuser,omitempty"`
	FinancialRiskLevel        string         `json:"financial_risk_level,omitempty"`
	AcquisitionSource         string         `json:"acquisition_source,omitempty"`
	PartnerID                 string         `json:"partner_id,omitempty"`
	AffiliateID               string         `json:"affiliate_id,omitempty"`
	ReferralLinkCode          string         `json:"referral_link_code,omitempty"`
	ReferralLimitReached      *bool          `json:"referral_limit_reached,omitempty"`
	CreationTimestamp         string         `json:"creation_timestamp,omitempty"`
	PhoneVerification         *bool          `json:"phone_verification,omitempty"`
	EmailVerification         *bool          `json:"email_verification,omitempty"`
	BankVerification          *bool          `json:"bank_verification,omitempty"`
	IDDocVerification         *bool          `json:"iddoc_verification,omitempty"`
	CoolingOffExpiryDate      string         `json:"cooling_off_expiry_date,omitempty"`
	SelfExclusionExpiryDate   string         `json:"self_exclusion_expiry_date,omitempty"`
	RiskScoreLevel            string         `json:"risk_score_level,omitempty"`
	MarketingSMSPreference    *bool          `json:"marketing_sms_preference,omitempty"`
	CustomData                map[string]any `json:"custom_data,omitempty"`
	SelfExclusionBy           string         `json:"self_exclusion_by,omitempty"`
	SelfExclusionByType       string         `json:"self_exclusion_by_type,omitempty"`
	SelfExclusionCheckTime    string         `json:"self_exclusion_check_time,omitempty"`
	SelfExclusionCreatedTime  string         `json:"self_exclusion_created_time,omitempty"`
	ClosedTime                string         `json:"closed_time,omitempty"`
	RealMoneyEnabled          *bool          `json:"real_money_enabled,omitempty"`
	PushToken                 string         `json:"push_token,omitempty"`
}

// Kind implements Record.
func (CustomerProfile) Kind() catalog.Kind { return catalog.KindCustomer }

// Validate checks c with the default vocabulary.
func (c CustomerProfile) Validate() validation.Result { return c.ValidateWith(nil) }

// ValidateWith implements Record.
func (c CustomerProfile) ValidateWith(vocab *validation.Vocabulary) validation.Result {
	fields := identity(c.AccountID, c.WorkspaceID, c.UserID)
	fields = append(fields,
		validation.F("username", c.Username, validation.Required()),
		validation.F("email", c.Email, validation.Required(), validation.Email()),
		validation.F("date_of_birth", c.DateOfBirth, validation.Date()),
		validation.F("gender", c.Gender, validation.OneOf(vocab.Values(validation.SetGender)...)),
		validation.F("account_status", c.AccountStatus,
			validation.OneOf(vocab.Values(validation.SetCustomerAccountStatus)...)),
		validation.F("vip_status", c.VIPStatus, validation.OneOf(vocab.Values(validation.SetVIPStatus)...)),
		validation.F("creation_timestamp", c.CreationTimestamp, validation.ISODateTime()),
	)
	return validation.Check(fields...)
}

var listNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtendedAttributes attaches a named list of free-form attributes to a
// customer.
type ExtendedAttributes struct {
	AccountID   string          `json:"account_id"`
	WorkspaceID string          `json:"workspace_id"`
	UserID      string          `json:"user_id"`
	ListName    string          `json:"list_name"`
	ExtData     json.RawMessage `json:"ext_data"`
}

// NewExtendedAttributes marshals data into ExtData.
func NewExtendedAttributes(accountID, workspaceID, userID, listName string, data map[string]any) (ExtendedAttributes, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return ExtendedAttributes{}, err
	}
	return ExtendedAttributes{
		AccountID:   accountID,
		WorkspaceID: workspaceID,
		UserID:      userID,
		ListName:    listName,
		ExtData:     raw,
	}, nil
}

// Kind implements Record.
func (ExtendedAttributes) Kind() catalog.Kind { return catalog.KindExtendedAttributes }

// Validate checks x.
func (x ExtendedAttributes) Validate() validation.Result { return x.ValidateWith(nil) }

// ValidateWith implements Record. ExtendedAttributes has no enumerated
// fields, so vocab is unused.
func (x ExtendedAttributes) ValidateWith(*validation.Vocabulary) validation.Result {
	fields := identity(x.AccountID, x.WorkspaceID, x.UserID)
	fields = append(fields,
		validation.F("list_name", x.ListName, validation.Required(),
			validation.Pattern(listNameRe, "must contain only alphanumeric characters, underscores, and hyphens")),
		validation.F("ext_data", x.ExtData, validation.Required(), validation.JSONObject()),
	)
	return validation.Check(fields...)
}
