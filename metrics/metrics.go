// Package metrics holds the Prometheus collectors exported by filegate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as the "outcome" label of RequestsTotal.
const (
	OutcomeServed       = "served"
	OutcomePartial      = "partial"
	OutcomeNotModified  = "not_modified"
	OutcomeFallthrough  = "fallthrough"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

var (
	// RequestsTotal counts mounted requests by how they were answered
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filegate_requests_total",
		Help: "The total number of requests under the mount, by outcome",
	}, []string{"outcome"})

	// ServedFileSize records the size of files served with a body
	ServedFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "filegate_served_file_size_bytes",
		Help:    "The size of files served, in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	})

	// StreamedBytes counts body bytes written to clients
	StreamedBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "filegate_streamed_bytes_total",
		Help: "The total number of body bytes written to clients",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ServedFileSize)
	prometheus.MustRegister(StreamedBytes)
}
