package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	uploadsTotal   *prometheus.CounterVec
	rowErrorsTotal *prometheus.CounterVec
	pairsFound     prometheus.Histogram
	rateLimited    prometheus.Counter
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pair_overlap",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests broken down by route and status.",
		}, []string{"route", "status"}),
		requestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pair_overlap",
			Subsystem: "http",
			Name:      "latency_seconds",
			Help:      "Latency distribution for HTTP requests.",
			Buckets: []float64{
				0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10,
			},
		}, []string{"route"}),
		uploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pair_overlap",
			Name:      "uploads_total",
			Help:      "Total number of uploads broken down by detected format and result.",
		}, []string{"format", "result"}),
		rowErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pair_overlap",
			Name:      "row_errors_total",
			Help:      "Total number of engine errors reported in upload results, by kind.",
		}, []string{"kind"}),
		pairsFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pair_overlap",
			Name:      "pairs_per_upload",
			Help:      "Number of overlapping pairs found per upload.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		rateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "pair_overlap",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}
