package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordRequest("coins_list", 200, 0.1)
	r.RecordRequest("coins_list", 200, 0.2)
	r.RecordRequest("market_chart_range", 503, 0.3)
	r.RecordRequest("coin_detail", 0, 0.4)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("coins_list", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("market_chart_range", "5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("coin_detail", "error")))
	assert.Equal(t, 3, testutil.CollectAndCount(r.requestDuration))
}

func TestRecordExtraction(t *testing.T) {
	r := NewRegistry()

	r.RecordExtraction("success")
	r.RecordExtraction("not_found")
	r.RecordExtraction("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.extractions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.extractions.WithLabelValues("not_found")))
}

func TestStatusToString(t *testing.T) {
	tests := map[int]string{
		0:   "error",
		101: "1xx",
		200: "2xx",
		304: "3xx",
		404: "4xx",
		500: "5xx",
	}
	for status, want := range tests {
		assert.Equal(t, want, statusToString(status), "status %d", status)
	}
}

func TestPush(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRegistry()
	r.RecordExtraction("success")

	require.NoError(t, r.Push(context.Background(), server.URL, "coinextractor"))
	assert.True(t, strings.HasPrefix(gotPath, "/metrics/job/coinextractor"), gotPath)
}

func TestPush_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewRegistry().Push(context.Background(), server.URL, "coinextractor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push metrics")
}
