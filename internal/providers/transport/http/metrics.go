package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restrecord_http_requests_total",
		Help: "HTTP requests sent to remote resources, by method and status.",
	}, []string{"method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "restrecord_http_request_duration_seconds",
		Help:    "Latency of HTTP requests sent to remote resources.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	registeredRequests, err := register(registerer, requests)
	if err != nil {
		return nil, err
	}
	registeredDuration, err := register(registerer, duration)
	if err != nil {
		return nil, err
	}
	return &metrics{requests: registeredRequests, duration: registeredDuration}, nil
}

// register reuses a collector already registered under the same name so
// several transports can share one registry.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, internalError("failed to register transport metrics", err)
}

func (m *metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
