package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Projection outcomes, used as the "outcome" label.
const (
	outcomeComputed = "computed"
	outcomeRejected = "rejected"
	outcomeInvalid  = "invalid"
)

// metrics holds the service's collectors. Each Service gets its own registry
// so tests can run several services side by side.
type metrics struct {
	registry    *prometheus.Registry
	projections *prometheus.CounterVec
	totalHours  prometheus.Histogram
	requestDur  *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifeclock",
			Name:      "projections_total",
			Help:      "Projection requests by outcome.",
		}, []string{"outcome"}),
		totalHours: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lifeclock",
			Name:      "allocation_total_hours",
			Help:      "Total daily hours submitted for projection.",
			Buckets:   prometheus.LinearBuckets(0, 4, 10),
		}),
		requestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lifeclock",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}

	// pre-create label values so they appear at zero
	for _, o := range []string{outcomeComputed, outcomeRejected, outcomeInvalid} {
		m.projections.WithLabelValues(o)
	}

	m.registry.MustRegister(
		m.projections,
		m.totalHours,
		m.requestDur,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
