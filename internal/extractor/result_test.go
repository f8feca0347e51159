package extractor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketDataPoint_Accessors(t *testing.T) {
	p := MarketDataPoint{1609459200000, 29000.0}

	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), p.Time())
	assert.Equal(t, 29000.0, p.Price())
}

func TestMarketDataPoint_DecodesProviderPairs(t *testing.T) {
	var points []MarketDataPoint
	err := json.Unmarshal([]byte(`[[1609459200000, 29000.0], [1609545600000, 32000.5]]`), &points)
	require.NoError(t, err)

	assert.Equal(t, []MarketDataPoint{
		{1609459200000, 29000.0},
		{1609545600000, 32000.5},
	}, points)
}

func TestExtractionResult_JSONShape(t *testing.T) {
	res := ExtractionResult{
		CoinInfo:   CoinSummary{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		MarketData: []MarketDataPoint{{1609459200000, 29000}},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"coin_info": {"id": "bitcoin", "symbol": "btc", "name": "Bitcoin"},
		"market_data": [[1609459200000, 29000]]
	}`, string(data))
}

func TestMarketRangeRequest_String(t *testing.T) {
	req := MarketRangeRequest{CoinID: "bitcoin", Currency: "usd", From: 1, To: 2}
	assert.Equal(t, "bitcoin/usd[1,2]", req.String())
}
