package event_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/datapipeline/event"
)

func header(name string) event.Header {
	return event.Header{
		AccountID:   accountID,
		WorkspaceID: workspaceID,
		UserID:      "user-1",
		EventName:   name,
		EventID:     "evt-1",
		EventTime:   "2024-01-15T10:30:00Z",
	}
}

func TestAccountEventValidation(t *testing.T) {
	assert.True(t, registration().Validate().IsValid)

	e := registration()
	e.EventCategory = "Deposit"
	e.EventTime = "15/01/2024"
	e.Device = "toaster"
	res := e.Validate()

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, `event_category must be "Account" for account events`)
	assert.Contains(t, res.Errors, "event_time must be in ISO 8601 format (YYYY-MM-DDTHH:mm:ssZ)")
	assert.Contains(t, res.Errors, "device must be one of: desktop, mobile, tablet, app")
}

func TestAccountEventRequiredFields(t *testing.T) {
	res := event.AccountEvent{}.Validate()

	for _, field := range []string{"account_id", "workspace_id", "user_id", "event_category", "event_name", "event_id", "event_time"} {
		assert.Contains(t, res.Errors, field+" is required")
	}
}

func TestDepositEventValidation(t *testing.T) {
	e := event.NewDepositEvent(header("Successful Deposit"))
	e.Amount = event.Ptr(100.0)
	e.Currency = "USD"
	e.PaymentMethod = "credit_card"
	e.TransactionID = "txn-1"
	e.Status = "success"
	assert.True(t, e.Validate().IsValid, e.Validate().Errors)

	e.Amount = event.Ptr(-5.0)
	e.PaymentMethod = "cheque"
	e.Currency = "usd"
	res := e.Validate()
	assert.Contains(t, res.Errors, "amount must be positive")
	assert.Contains(t, res.Errors, "currency must be a valid 3-letter ISO currency code")
	assert.Len(t, res.Errors, 3)

	missing := event.NewDepositEvent(header("Successful Deposit")).Validate()
	assert.Contains(t, missing.Errors, "amount is required")
	assert.Contains(t, missing.Errors, "payment_method is required")
	assert.Contains(t, missing.Errors, "transaction_id is required")
}

func TestWithdrawEventValidation(t *testing.T) {
	e := event.NewWithdrawEvent(header("Withdrawal Rejected"))
	e.Amount = event.Ptr(50.0)
	e.PaymentMethod = "bank"
	e.TransactionID = "txn-2"
	e.Status = "rejected"
	assert.True(t, e.Validate().IsValid, e.Validate().Errors)

	e.EventName = "Successful Deposit"
	e.Status = "refunded"
	res := e.Validate()
	assert.Len(t, res.Errors, 2)
}

func TestGamingActivityEventValidation(t *testing.T) {
	e := event.NewGamingActivityEvent(header("Bet Placed"))
	e.GameID = "g-1"
	e.BetAmount = event.Ptr(2.5)
	e.FreeSpinsUsed = event.Ptr(0)
	e.BonusUsed = event.Ptr(false)
	assert.True(t, e.Validate().IsValid, e.Validate().Errors)

	body, err := event.Encode(e)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"bonus_used":false`)
	assert.Contains(t, string(body), `"free_spins_used":0`)

	e.FreeSpinsUsed = event.Ptr(-1)
	assert.Equal(t, []string{"free_spins_used must be a non-negative number"}, e.Validate().Errors)
}

func TestWalletBalanceEventValidation(t *testing.T) {
	e := event.NewWalletBalanceEvent(header("Balance Update"))
	e.Currency = "EUR"
	e.CurrentCashBalance = event.Ptr(10.0)
	e.BlockedAmount = event.Ptr(0.0)
	assert.True(t, e.Validate().IsValid, e.Validate().Errors)

	e.BlockedAmount = event.Ptr(-0.5)
	assert.Equal(t, []string{"blocked_amount must be a non-negative number"}, e.Validate().Errors)
}

func TestReferFriendEventValidation(t *testing.T) {
	e := event.NewReferFriendEvent(header("Referral Success"))
	e.RewardType = "bonus"
	e.RewardClaimedStatus = "claimed"
	e.RefereeRegistrationDate = "2024-01-10T08:00:00Z"
	e.SuccessfulReferralConfirmation = event.Ptr(true)
	assert.True(t, e.Validate().IsValid, e.Validate().Errors)

	e.RewardType = "voucher"
	e.RefereeFirstDeposit = event.Ptr(-1.0)
	assert.Len(t, e.Validate().Errors, 2)
}

func TestCustomerProfileValidation(t *testing.T) {
	c := event.CustomerProfile{
		AccountID:   accountID,
		WorkspaceID: workspaceID,
		UserID:      "user-1",
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		DateOfBirth: "1990-05-15",
		Gender:      "Female",
		VIPStatus:   "Gold",
	}
	assert.True(t, c.Validate().IsValid, c.Validate().Errors)

	c.Email = "not-an-email"
	c.DateOfBirth = "15-05-1990"
	c.VIPStatus = "Bronze"
	res := c.Validate()
	assert.Contains(t, res.Errors, "email must be a valid email address")
	assert.Contains(t, res.Errors, "date_of_birth must be in YYYY-MM-DD format")
	assert.Contains(t, res.Errors, "vip_status must be one of: Regular, Silver, Gold, Platinum, Diamond")
}

func TestCustomerProfileFieldOrder(t *testing.T) {
	c := event.CustomerProfile{
		AccountID:   "a",
		WorkspaceID: "w",
		UserID:      "u",
		Username:    "n",
		Email:       "e@x.io",
		PushToken:   "tok",
	}
	body, err := event.Encode(c)
	require.NoError(t, err)
	assert.Equal(t, `{"account_id":"a","workspace_id":"w","user_id":"u","username":"n","email":"e@x.io","push_token":"tok"}`, string(body))
}

func TestExtendedAttributes(t *testing.T) {
	x, err := event.NewExtendedAttributes(accountID, workspaceID, "user-1", "vip_list-2", map[string]any{"tier": "gold"})
	require.NoError(t, err)
	assert.True(t, x.Validate().IsValid, x.Validate().Errors)

	body, err := event.Encode(x)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"ext_data":{"tier":"gold"}`)

	x.ListName = "vip list"
	x.ExtData = json.RawMessage(`[1]`)
	res := x.Validate()
	assert.Equal(t, []string{
		"list_name must contain only alphanumeric characters, underscores, and hyphens",
		"ext_data must be a valid JSON object",
	}, res.Errors)
}
