package validation

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Vocabulary keys used by the event records.
const (
	SetDevice        = "device"
	SetPaymentMethod = "payment_method"

	SetAccountEventName = "account.event_name"
	SetAccountStatus    = "account.status"

	SetDepositEventName = "deposit.event_name"
	SetDepositStatus    = "deposit.status"

	SetWithdrawEventName = "withdraw.event_name"
	SetWithdrawStatus    = "withdraw.status"

	SetGamingEventName = "gaming.event_name"

	SetWalletBalanceEventName = "wallet_balance.event_name"
	SetReferFriendEventName   = "refer_friend.event_name"

	SetRewardType          = "refer_friend.reward_type"
	SetRewardClaimedStatus = "refer_friend.reward_claimed_status"

	SetGender                = "customer.gender"
	SetCustomerAccountStatus = "customer.account_status"
	SetVIPStatus             = "customer.vip_status"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// Vocabulary holds the accepted values of enumerated fields, keyed by set
// name. It is immutable; With returns a modified copy.
type Vocabulary struct {
	sets map[string][]string
}

// DefaultVocabulary returns the vocabulary shipped with the module.
var DefaultVocabulary = sync.OnceValue(func() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("validation: embedded vocabulary: %v", err))
	}
	return v
})

// ParseVocabulary decodes a YAML mapping of set name to value list.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	sets := make(map[string][]string)
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return &Vocabulary{sets: sets}, nil
}

// LoadVocabulary reads a vocabulary file from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return ParseVocabulary(data)
}

// Values returns the accepted values for key, or nil when the key is
// unknown. A nil Vocabulary falls back to DefaultVocabulary.
func (v *Vocabulary) Values(key string) []string {
	if v == nil {
		v = DefaultVocabulary()
	}
	return slices.Clone(v.sets[key])
}

// With returns a copy of v with key set to vals. Passing no values removes
// the constraint.
func (v *Vocabulary) With(key string, vals ...string) *Vocabulary {
	if v == nil {
		v = DefaultVocabulary()
	}
	sets := maps.Clone(v.sets)
	if len(vals) == 0 {
		delete(sets, key)
	} else {
		sets[key] = slices.Clone(vals)
	}
	return &Vocabulary{sets: sets}
}

// Keys returns the set names, sorted.
func (v *Vocabulary) Keys() []string {
	if v == nil {
		v = DefaultVocabulary()
	}
	return slices.Sorted(maps.Keys(v.sets))
}
