package testutil

import (
	"context"
	"sync"

	"coinextractor/internal/extractor"
)

// MockExtractor is a mock implementation of the Extractor interface for testing
type MockExtractor struct {
	ValidateFunc func() bool
	ExtractFunc  func(ctx context.Context, req extractor.MarketRangeRequest) *extractor.ExtractionResult

	mu    sync.Mutex
	calls []extractor.MarketRangeRequest
}

// ValidateParameters implements the Extractor interface
func (m *MockExtractor) ValidateParameters() bool {
	if m.ValidateFunc != nil {
		return m.ValidateFunc()
	}
	return true
}

// ExtractDataFromSource implements the Extractor interface
func (m *MockExtractor) ExtractDataFromSource(ctx context.Context, req extractor.MarketRangeRequest) *extractor.ExtractionResult {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, req)
	}
	return nil
}

// Calls returns the requests received so far, in order
func (m *MockExtractor) Calls() []extractor.MarketRangeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]extractor.MarketRangeRequest(nil), m.calls...)
}

// NewMockExtractor creates a mock that answers every request with the given
// price series, or with nil for coin ids listed in failing
func NewMockExtractor(prices []extractor.MarketDataPoint, failing ...string) *MockExtractor {
	fail := make(map[string]bool, len(failing))
	for _, id := range failing {
		fail[id] = true
	}

	return &MockExtractor{
		ExtractFunc: func(ctx context.Context, req extractor.MarketRangeRequest) *extractor.ExtractionResult {
			if fail[req.CoinID] {
				return nil
			}
			return &extractor.ExtractionResult{
				CoinInfo:   extractor.CoinSummary{ID: req.CoinID, Symbol: req.CoinID, Name: req.CoinID},
				MarketData: prices,
			}
		},
	}
}
