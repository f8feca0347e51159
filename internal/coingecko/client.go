package coingecko

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"

	"coinextractor/internal/extractor"
	"coinextractor/internal/session"
)

const (
	// APIKeyHeader carries the demo API key on every request
	APIKeyHeader = "x-cg-demo-api-key"

	endpointCoinsList        = "coins_list"
	endpointCoinDetail       = "coin_detail"
	endpointMarketChartRange = "market_chart_range"
)

// Recorder receives request and extraction measurements.
type Recorder interface {
	RecordRequest(endpoint string, status int, duration float64)
	RecordExtraction(outcome string)
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for every failure and trace line
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the recorder that observes provider requests
func WithMetrics(recorder Recorder) Option {
	return func(c *Client) {
		c.metrics = recorder
	}
}

// Client extracts coin metadata and market ranges from the CoinGecko API.
// The coin directory is fetched at most once per Client.
type Client struct {
	session *session.Session
	apiKey  string
	baseURL string
	client  *resty.Client
	logger  *zap.Logger
	metrics Recorder

	mu        sync.Mutex
	coinsList []extractor.CoinSummary
	loaded    bool
}

var _ extractor.Extractor = (*Client)(nil)

// NewClient creates a CoinGecko client. It performs no network I/O.
func NewClient(sess *session.Session, apiKey, baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		session: sess,
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  extractor.NewHTTPClient(baseURL, map[string]string{APIKeyHeader: apiKey}),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("source", "coingecko"))

	return c
}

// ValidateParameters reports whether the session, API key and base URL are
// all usable. Every failed check is logged.
func (c *Client) ValidateParameters() bool {
	valid := true
	if c.session == nil {
		c.logger.Error("session must be a non-nil pipeline session")
		valid = false
	}
	if c.apiKey == "" {
		c.logger.Error("api key must be a non-empty string")
		valid = false
	}
	if c.baseURL == "" {
		c.logger.Error("base url must be a non-empty string")
		valid = false
	}
	return valid
}

// CoinsList returns the provider's coin directory. The first call fetches it;
// later calls reuse that result, including an empty one after a failure.
func (c *Client) CoinsList(ctx context.Context) []extractor.CoinSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.coinsList = c.GetCoinList(ctx)
		c.loaded = true
	}
	return c.coinsList
}

// GetCoinList fetches the coin directory without touching the cache. It
// returns an empty slice on failure.
func (c *Client) GetCoinList(ctx context.Context) []extractor.CoinSummary {
	coins, err := c.fetchCoinList(ctx)
	if err != nil {
		c.logger.Warn("coin list unavailable", zap.Error(err))
		return []extractor.CoinSummary{}
	}
	return coins
}

// FindCoinByID returns the first directory entry whose id equals coinID, or
// nil when coinID is blank or not listed.
func (c *Client) FindCoinByID(ctx context.Context, coinID string) *extractor.CoinSummary {
	coin, err := c.findCoin(ctx, coinID)
	if err != nil {
		return nil
	}
	return coin
}

// GetCoinDataByID fetches the full metadata document of a coin, or nil on
// any failure.
func (c *Client) GetCoinDataByID(ctx context.Context, coinID string) extractor.CoinDetail {
	detail, err := c.fetchCoinDetail(ctx, coinID)
	if err != nil {
		return nil
	}
	return detail
}

// ExtractDataFromSource resolves req.CoinID against the coin directory and
// returns its price series for [req.From, req.To], or nil on any failure.
func (c *Client) ExtractDataFromSource(ctx context.Context, req extractor.MarketRangeRequest) *extractor.ExtractionResult {
	start := time.Now()
	result, err := c.extract(ctx, req)
	if err != nil {
		c.recordExtraction(string(extractor.KindOf(err)))
		return nil
	}

	c.recordExtraction("success")
	c.logger.Info("market data extracted",
		zap.String("coin_id", req.CoinID),
		zap.String("currency", req.Currency),
		zap.Int("points", len(result.MarketData)),
		zap.Duration("elapsed", time.Since(start)))
	return result
}

func (c *Client) recordExtraction(outcome string) {
	if c.metrics != nil {
		c.metrics.RecordExtraction(outcome)
	}
}
