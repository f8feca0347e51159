package extractor

import (
	"fmt"
	"time"
)

// CoinSummary is the minimal identifying record of a coin, as returned by the
// provider's coin directory.
type CoinSummary struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CoinDetail is the provider-defined metadata document for a single coin.
type CoinDetail map[string]any

// MarketDataPoint is a (timestamp, price) pair. The timestamp is in UNIX
// milliseconds, as the provider reports it.
type MarketDataPoint [2]float64

// Time returns the observation time of the point.
func (p MarketDataPoint) Time() time.Time {
	return time.UnixMilli(int64(p[0])).UTC()
}

// Price returns the observed price.
func (p MarketDataPoint) Price() float64 {
	return p[1]
}

// MarketRangeRequest describes one market range query. From and To are UNIX
// seconds and are passed to the provider as given, without range checks.
type MarketRangeRequest struct {
	CoinID   string `json:"coin_id"`
	Currency string `json:"currency"`
	From     int64  `json:"from"`
	To       int64  `json:"to"`
}

// String renders the request for log lines.
func (r MarketRangeRequest) String() string {
	return fmt.Sprintf("%s/%s[%d,%d]", r.CoinID, r.Currency, r.From, r.To)
}

// ExtractionResult is the outcome of one successful extraction.
type ExtractionResult struct {
	// CoinInfo is the directory entry the coin id resolved to.
	CoinInfo CoinSummary `json:"coin_info"`

	// MarketData is the provider's price series in provider order. Sibling
	// series such as volumes and market caps are dropped.
	MarketData []MarketDataPoint `json:"market_data"`
}
