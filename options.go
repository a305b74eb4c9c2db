package datapipeline

import (
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	gu "github.com/xraph/go-utils/metrics"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/datapipeline/catalog"
	"github.com/xraph/datapipeline/delivery"
	"github.com/xraph/datapipeline/observability"
	"github.com/xraph/datapipeline/ratelimit"
	"github.com/xraph/datapipeline/validation"
)

// Client submits signed events to the ingestion API. It is safe for
// concurrent use.
type Client struct {
	cfg     atomic.Pointer[Config]
	initial Config

	catalog    *catalog.Catalog
	validator  *catalog.Validator
	vocab      *validation.Vocabulary
	validate   bool
	httpClient *http.Client
	transport  *delivery.Transport
	limiter    *ratelimit.Limiter
	metrics    observability.Recorders
	tracer     *observability.Tracer
	logger     *slog.Logger

	batchConcurrency int
}

// Option configures a Client.
type Option func(*Client) error

// New creates a Client. It fails with ErrConfiguration when the credentials
// or the base URL are missing, before any network activity.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		initial: DefaultConfig(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.initial.Validate(); err != nil {
		return nil, err
	}
	cfg := c.initial
	c.cfg.Store(&cfg)
	c.wireServices()
	return c, nil
}

// wireServices initializes the collaborators after options have been applied.
func (c *Client) wireServices() {
	if c.catalog == nil {
		c.catalog = catalog.New()
	}
	c.limiter = ratelimit.New()
	var rec observability.Recorder
	if len(c.metrics) > 0 {
		rec = c.metrics
	}
	c.transport = delivery.NewTransport(delivery.TransportConfig{
		Client:  c.httpClient,
		Timeout: c.initial.Timeout,
		Limiter: c.limiter,
		Metrics: rec,
		Tracer:  c.tracer,
	}, c.logger)
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.initial = cfg
		return nil
	}
}

// WithCredentials sets the token, account and workspace.
func WithCredentials(authToken, accountID, workspaceID string) Option {
	return func(c *Client) error {
		c.initial.AuthToken = authToken
		c.initial.AccountID = accountID
		c.initial.WorkspaceID = workspaceID
		return nil
	}
}

// WithBaseURL sets the ingestion API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.initial.BaseURL = baseURL
		return nil
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.initial.Timeout = d
		return nil
	}
}

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		c.initial.MaxRetries = n
		return nil
	}
}

// WithRetryBaseDelay sets the linear backoff unit.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(c *Client) error {
		c.initial.RetryBaseDelay = d
		return nil
	}
}

// WithRateLimit caps requests per second per endpoint path.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) error {
		c.initial.RateLimit = perSecond
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return errors.New("datapipeline: logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for every attempt. By default a
// dedicated client is created with dial and response-header timeouts taken
// from the initial configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithMetrics registers Prometheus instruments with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		c.metrics = append(c.metrics, observability.NewMetrics(reg))
		return nil
	}
}

// WithMetricFactory records the same instruments through a go-utils
// MetricFactory. It can be combined with WithMetrics.
func WithMetricFactory(factory gu.MetricFactory) Option {
	return func(c *Client) error {
		if factory == nil {
			return errors.New("datapipeline: metric factory must not be nil")
		}
		c.metrics = append(c.metrics, observability.NewFactoryMetrics(factory))
		return nil
	}
}

// WithTracer enables OpenTelemetry spans for submissions and attempts. A
// nil provider uses the global one.
func WithTracer(tp trace.TracerProvider) Option {
	return func(c *Client) error {
		c.tracer = observability.NewTracer(tp)
		return nil
	}
}

// WithCatalog replaces the built-in endpoint catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Client) error {
		c.catalog = cat
		return nil
	}
}

// WithSchemaValidation checks serialized payloads against the catalog
// schemas before signing.
func WithSchemaValidation() Option {
	return func(c *Client) error {
		c.validator = catalog.NewValidator()
		return nil
	}
}

// WithRecordValidation runs each record's ValidateWith before the typed
// Send methods submit it. A nil vocab uses the default vocabulary.
func WithRecordValidation(vocab *validation.Vocabulary) Option {
	return func(c *Client) error {
		c.validate = true
		c.vocab = vocab
		return nil
	}
}

// WithBatchConcurrency sets how many categories SendBatch submits at once.
// Values below 2 keep batches sequential.
func WithBatchConcurrency(n int) Option {
	return func(c *Client) error {
		c.batchConcurrency = n
		return nil
	}
}
