package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	ordersPlacedCounter prometheus.Counter
	storeStatsGauge     *prometheus.GaugeVec
)

func init() {
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	ordersPlacedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed.",
		},
	)
	storeStatsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_stats",
			Help: "Store figures refreshed by the statistics job.",
		},
		[]string{"name"},
	)
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, ordersPlacedCounter, storeStatsGauge)
}
