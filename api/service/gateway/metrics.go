package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	prom "github.com/harmony-one/btcdash/api/service/prometheus"
)

func init() {
	prom.PromRegistry().MustRegister(
		requestCounterVec,
		requestDurationVec,
		rateLimitedCounter,
	)
}

var (
	requestCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "btcdash",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "number of api requests per endpoint and status code",
		},
		[]string{"endpoint", "code"},
	)

	requestDurationVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "btcdash",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "duration of api requests per endpoint",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"endpoint"},
	)

	rateLimitedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "btcdash",
			Subsystem: "gateway",
			Name:      "rate_limited_total",
			Help:      "number of api requests rejected by the rate limiter",
		},
	)
)

func observeRequest(endpoint string, status int, d time.Duration) {
	requestCounterVec.With(prometheus.Labels{"endpoint": endpoint, "code": strconv.Itoa(status)}).Inc()
	requestDurationVec.With(prometheus.Labels{"endpoint": endpoint}).Observe(d.Seconds())
}
