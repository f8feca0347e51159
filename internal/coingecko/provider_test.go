package coingecko

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"coinextractor/internal/session"
)

const (
	testAPIKey    = "test_api_key"
	coinsListOK   = `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"ethereum","symbol":"eth","name":"Ethereum"}]`
	marketRangeOK = `{
		"prices": [[1609459200000, 29000.0], [1609545600000, 32000.0]],
		"market_caps": [[1609459200000, 540000000000.0]],
		"total_volumes": [[1609459200000, 43000000000.0]]
	}`
)

// mockProvider is an httptest CoinGecko stand-in that counts hits per route.
type mockProvider struct {
	t      *testing.T
	server *httptest.Server

	mu   sync.Mutex
	hits map[string]int
	last map[string]*http.Request
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

// newMockProvider serves the three provider routes. Nil handlers fall back
// to successful canned responses.
func newMockProvider(t *testing.T, coinsList, detail, market http.HandlerFunc) *mockProvider {
	t.Helper()

	if coinsList == nil {
		coinsList = jsonHandler(http.StatusOK, coinsListOK)
	}
	if detail == nil {
		detail = jsonHandler(http.StatusOK, `{"id":"bitcoin","symbol":"btc","market_data":{"current_price":{"usd":29000}}}`)
	}
	if market == nil {
		market = jsonHandler(http.StatusOK, marketRangeOK)
	}

	p := &mockProvider{
		t:    t,
		hits: make(map[string]int),
		last: make(map[string]*http.Request),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /coins/list", p.count(endpointCoinsList, coinsList))
	mux.HandleFunc("GET /coins/{id}", p.count(endpointCoinDetail, detail))
	mux.HandleFunc("GET /coins/{id}/market_chart/range", p.count(endpointMarketChartRange, market))

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func (p *mockProvider) count(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.hits[endpoint]++
		p.last[endpoint] = r
		p.mu.Unlock()

		if got := r.Header.Get(APIKeyHeader); got != testAPIKey {
			p.t.Errorf("%s = %q, want %q", APIKeyHeader, got, testAPIKey)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			p.t.Errorf("Accept = %q, want application/json", got)
		}

		next(w, r)
	}
}

func (p *mockProvider) Hits(endpoint string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[endpoint]
}

func (p *mockProvider) LastRequest(endpoint string) *http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last[endpoint]
}

func (p *mockProvider) URL() string {
	return p.server.URL
}

// newObservedClient builds a client whose log output can be inspected.
func newObservedClient(baseURL string, opts ...Option) (*Client, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	return NewClient(session.New("test"), testAPIKey, baseURL, opts...), logs
}

// fakeRecorder captures metric observations.
type fakeRecorder struct {
	mu          sync.Mutex
	requests    []string
	statuses    []int
	extractions []string
}

func (f *fakeRecorder) RecordRequest(endpoint string, status int, duration float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, endpoint)
	f.statuses = append(f.statuses, status)
}

func (f *fakeRecorder) RecordExtraction(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extractions = append(f.extractions, outcome)
}
