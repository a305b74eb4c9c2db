package catalog

// Kind identifies an event category.
type Kind string

// Event categories accepted by the ingestion API.
const (
	KindCustomer           Kind = "customer"
	KindExtendedAttributes Kind = "extended_attributes"
	KindAccount            Kind = "account"
	KindDeposit            Kind = "deposit"
	KindWithdraw           Kind = "withdraw"
	KindGamingActivity     Kind = "gaming_activity"
	KindReferFriend        Kind = "refer_friend"
	KindWalletBalance      Kind = "wallet_balance"
)

// HealthPath is the unsigned status endpoint.
const HealthPath = "/datapipeline/health"

// Kinds lists every category in batch submission order.
var Kinds = []Kind{
	KindCustomer,
	KindExtendedAttributes,
	KindAccount,
	KindDeposit,
	KindWithdraw,
	KindGamingActivity,
	KindReferFriend,
	KindWalletBalance,
}

// Defaults returns the built-in definitions, without schemas.
func Defaults() []Definition {
	return []Definition{
		{Kind: KindCustomer, Path: "/customers", Description: "Customer profiles."},
		{Kind: KindExtendedAttributes, Path: "/extattributes", Description: "Free-form customer attribute lists."},
		{Kind: KindAccount, Path: "/events/account", Category: "Account", Description: "Registration, verification and other account lifecycle events."},
		{Kind: KindDeposit, Path: "/events/deposit", Category: "Deposit", Description: "Deposit transactions."},
		{Kind: KindWithdraw, Path: "/events/withdraw", Category: "Withdraw", Description: "Withdrawal transactions."},
		{Kind: KindGamingActivity, Path: "/events/gaming-activity", Category: "Gaming", Description: "Bets, rounds, tournaments and other gaming activity."},
		{Kind: KindReferFriend, Path: "/events/refer-friend", Category: "Refer Friend", Description: "Referral program events."},
		{Kind: KindWalletBalance, Path: "/events/wallet-balance", Category: "Wallet Balance", Description: "Wallet balance snapshots."},
	}
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }
