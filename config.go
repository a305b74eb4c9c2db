package datapipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/xraph/datapipeline/delivery"
	"github.com/xraph/datapipeline/signature"
)

// Config holds the identity and retry settings of a Client. A Client keeps
// its Config behind a single pointer; every call reads one snapshot, and
// UpdateConfig replaces the whole value at once.
type Config struct {
	// AuthToken is the secret API token. It is sent in the token header and
	// is the key material of request signatures.
	AuthToken string

	// AccountID identifies the account.
	AccountID string

	// WorkspaceID identifies the workspace within the account.
	WorkspaceID string

	// BaseURL is the ingestion API root, e.g. "https://api.example.com/v1".
	// Endpoint paths are appended to it.
	BaseURL string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// RetryBaseDelay is multiplied by the retry number to get the backoff.
	RetryBaseDelay time.Duration

	// RateLimit caps requests per second per endpoint path. 0 disables it.
	RateLimit int
}

// DefaultConfig returns a Config with default timeouts and retry settings
// and no credentials.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: 1 * time.Second,
	}
}

// Validate reports every problem with c, wrapped in ErrConfiguration.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.AuthToken) == "" {
		errs = append(errs, errors.New("auth token is required"))
	}
	if strings.TrimSpace(c.AccountID) == "" {
		errs = append(errs, errors.New("account id is required"))
	}
	if strings.TrimSpace(c.WorkspaceID) == "" {
		errs = append(errs, errors.New("workspace id is required"))
	}
	if err := validateBaseURL(c.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries must not be negative"))
	}
	if c.RetryBaseDelay < 0 {
		errs = append(errs, errors.New("retry base delay must not be negative"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate limit must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

func validateBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url %q must be an absolute http(s) url", raw)
	}
	return nil
}

// LogValue implements slog.LogValuer. The token is masked.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("auth_token", MaskToken(c.AuthToken)),
		slog.String("account_id", c.AccountID),
		slog.String("workspace_id", c.WorkspaceID),
		slog.String("base_url", c.BaseURL),
		slog.Duration("timeout", c.Timeout),
		slog.Int("max_retries", c.MaxRetries),
		slog.Duration("retry_base_delay", c.RetryBaseDelay),
		slog.Int("rate_limit", c.RateLimit),
	)
}

// Masked returns a copy of c safe to print, with the token masked.
func (c Config) Masked() Config {
	c.AuthToken = MaskToken(c.AuthToken)
	return c
}

// MaskToken hides all but the last four characters of a token. Tokens of
// eight characters or fewer are hidden entirely.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

func (c Config) identity() signature.Identity {
	return signature.Identity{
		AuthToken:   c.AuthToken,
		AccountID:   c.AccountID,
		WorkspaceID: c.WorkspaceID,
	}
}

func (c Config) policy() delivery.Policy {
	return delivery.Policy{
		MaxRetries:     c.MaxRetries,
		RetryBaseDelay: c.RetryBaseDelay,
		Timeout:        c.Timeout,
		RateLimit:      c.RateLimit,
	}
}

func (c Config) endpoint(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + path
}
