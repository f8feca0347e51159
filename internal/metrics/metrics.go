package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry holds the extractor's Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	extractions     *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		Registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractor_requests_total",
				Help: "Total number of provider API requests",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "extractor_request_duration_seconds",
				Help:    "Provider API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractor_extractions_total",
				Help: "Total number of extraction calls by outcome",
			},
			[]string{"outcome"},
		),
	}

	r.MustRegister(r.requestsTotal)
	r.MustRegister(r.requestDuration)
	r.MustRegister(r.extractions)

	return r
}

// RecordRequest records one provider request. A zero status means the
// request failed before a response was received.
func (r *Registry) RecordRequest(endpoint string, status int, duration float64) {
	r.requestsTotal.WithLabelValues(endpoint, statusToString(status)).Inc()
	r.requestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordExtraction records the outcome of one extraction call.
func (r *Registry) RecordExtraction(outcome string) {
	r.extractions.WithLabelValues(outcome).Inc()
}

// Push sends every registered metric to a Pushgateway under the given job.
func (r *Registry) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

func statusToString(status int) string {
	switch {
	case status == 0:
		return "error"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
