// Package metrics exposes transcript retrieval and API metrics for
// Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"yttranscript/youtube"
)

const namespace = "yttranscript"

// Collector owns a registry and the metrics recorded into it. It
// implements youtube.Observer.
type Collector struct {
	registry *prometheus.Registry

	RetrievalsTotal    *prometheus.CounterVec
	RetrievalDuration  *prometheus.HistogramVec
	TranscriptSegments prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CircuitState *prometheus.GaugeVec
}

// NewCollector creates a Collector backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newCollector(reg)
}

func newCollector(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,

		RetrievalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retrievals_total",
				Help:      "Transcript retrievals by outcome kind",
			},
			[]string{"kind"},
		),
		RetrievalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "retrieval_duration_seconds",
				Help:      "End-to-end transcript retrieval latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
		TranscriptSegments: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transcript_segments",
				Help:      "Segments per successful retrieval",
				Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "API request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		CircuitState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_state",
				Help:      "Upstream circuit state per host (0 closed, 1 half-open, 2 open)",
			},
			[]string{"host"},
		),
	}
}

// ObserveRetrieval records one retrieval outcome.
func (c *Collector) ObserveRetrieval(kind string, elapsed time.Duration, segments int) {
	c.RetrievalsTotal.WithLabelValues(kind).Inc()
	c.RetrievalDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if kind == youtube.KindOK {
		c.TranscriptSegments.Observe(float64(segments))
	}
}

// ObserveHTTPRequest records one API request.
func (c *Collector) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CircuitStateChanged matches the http client's circuit breaker hook.
func (c *Collector) CircuitStateChanged(host string, _, to gobreaker.State) {
	c.CircuitState.WithLabelValues(host).Set(float64(to))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
