package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coinextractor/internal/extractor"
)

// validateCoinID rejects identifiers that are empty after trimming whitespace
func (c *Client) validateCoinID(coinID string) error {
	if strings.TrimSpace(coinID) == "" {
		c.logger.Error("coin id cannot be empty", zap.String("coin_id", coinID))
		return extractor.NewError(extractor.KindInvalidID, "coin id cannot be empty")
	}
	return nil
}

func (c *Client) fetchCoinList(ctx context.Context) ([]extractor.CoinSummary, error) {
	body, err := c.get(ctx, endpointCoinsList, "/coins/list", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch coin list: %w", err)
	}

	var coins []extractor.CoinSummary
	if err := json.Unmarshal(body, &coins); err != nil {
		c.logger.Error("coin list response is not a list", zap.Error(err))
		return nil, extractor.NewDecodeError("coin list response is not a list", err)
	}
	if coins == nil {
		c.logger.Error("coin list response is not a list")
		return nil, extractor.NewError(extractor.KindDecode, "coin list response is null")
	}

	c.logger.Debug("coin list fetched", zap.Int("coins", len(coins)))
	return coins, nil
}

// findCoin scans the cached directory for an exact, case-sensitive id match.
// A failed directory fetch and an unlisted id both surface as KindNotFound.
func (c *Client) findCoin(ctx context.Context, coinID string) (*extractor.CoinSummary, error) {
	if err := c.validateCoinID(coinID); err != nil {
		return nil, err
	}

	for _, coin := range c.CoinsList(ctx) {
		if coin.ID == coinID {
			found := coin
			return &found, nil
		}
	}

	c.logger.Warn("coin not found", zap.String("coin_id", coinID))
	return nil, extractor.NewError(extractor.KindNotFound, fmt.Sprintf("coin with id %q not found", coinID))
}

func (c *Client) fetchCoinDetail(ctx context.Context, coinID string) (extractor.CoinDetail, error) {
	if err := c.validateCoinID(coinID); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, endpointCoinDetail, "/coins/{coinID}", map[string]string{"coinID": coinID}, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch coin detail for %s: %w", coinID, err)
	}

	var detail extractor.CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		c.logger.Error("coin detail response is not an object", zap.String("coin_id", coinID), zap.Error(err))
		return nil, extractor.NewDecodeError("coin detail response is not an object", err)
	}
	if detail == nil {
		c.logger.Error("coin detail response is empty", zap.String("coin_id", coinID))
		return nil, extractor.NewError(extractor.KindEmptyData, "coin detail response is null")
	}

	return detail, nil
}
