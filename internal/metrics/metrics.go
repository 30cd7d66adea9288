package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequests counts handled requests by method, route template and status.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tours_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"method", "route", "status"},
)

// HTTPDuration records request latency by method and route template.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "tours_http_request_duration_seconds",
		Help:    "Latency in seconds of HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Store statement metrics, labelled by operation (list, get, create, update, delete).
var (
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tours_store_query_duration_seconds",
			Help:    "Latency in seconds of store statements",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tours_store_errors_total",
			Help: "Total number of failed store statements",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration)
	prometheus.MustRegister(StoreDuration, StoreErrors)
}
