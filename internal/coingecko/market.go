package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"coinextractor/internal/extractor"
)

func (c *Client) extract(ctx context.Context, req extractor.MarketRangeRequest) (*extractor.ExtractionResult, error) {
	if !c.ValidateParameters() {
		return nil, extractor.NewError(extractor.KindConfig, "invalid client configuration")
	}

	coin, err := c.findCoin(ctx, req.CoinID)
	if err != nil {
		return nil, err
	}

	prices, err := c.fetchMarketRange(ctx, req)
	if err != nil {
		c.logger.Error("failed to fetch market data",
			zap.String("coin_id", req.CoinID),
			zap.String("kind", string(extractor.KindOf(err))))
		return nil, err
	}

	return &extractor.ExtractionResult{
		CoinInfo:   *coin,
		MarketData: prices,
	}, nil
}

// fetchMarketRange queries the range endpoint and keeps only the prices
// series. The range is forwarded unmodified, inverted or not.
func (c *Client) fetchMarketRange(ctx context.Context, req extractor.MarketRangeRequest) ([]extractor.MarketDataPoint, error) {
	body, err := c.get(ctx, endpointMarketChartRange, "/coins/{coinID}/market_chart/range",
		map[string]string{"coinID": req.CoinID},
		map[string]string{
			"vs_currency": req.Currency,
			"from":        strconv.FormatInt(req.From, 10),
			"to":          strconv.FormatInt(req.To, 10),
		})
	if err != nil {
		return nil, fmt.Errorf("fetch market range %s: %w", req, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, extractor.NewError(extractor.KindEmptyData, "market data response is empty")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, extractor.NewDecodeError("market data response is not an object", err)
	}
	if len(payload) == 0 {
		return nil, extractor.NewError(extractor.KindEmptyData, "market data response is empty")
	}

	prices := []extractor.MarketDataPoint{}
	if raw, ok := payload["prices"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := json.Unmarshal(raw, &prices); err != nil {
			return nil, extractor.NewDecodeError("prices series is malformed", err)
		}
	}

	return prices, nil
}
