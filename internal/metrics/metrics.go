package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)

	// DynamoDB metrics
	DynamoRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dynamo_requests_total",
			Help: "Total number of DynamoDB requests",
		},
		[]string{"operation", "status"},
	)
	DynamoRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dynamo_request_duration_seconds",
			Help: "Duration of DynamoDB requests in seconds",
		},
		[]string{"operation"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestsInFlight)

	prometheus.MustRegister(DynamoRequestsTotal)
	prometheus.MustRegister(DynamoRequestDuration)
}
