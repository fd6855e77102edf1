package bitcoind

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	prom "github.com/harmony-one/btcdash/api/service/prometheus"
)

func init() {
	prom.PromRegistry().MustRegister(
		callCounterVec,
		callDurationVec,
	)
}

var (
	callCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "btcdash",
			Subsystem: "bitcoind",
			Name:      "calls_total",
			Help:      "number of calls to bitcoind per method and result",
		},
		[]string{"method", "result"},
	)

	callDurationVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "btcdash",
			Subsystem: "bitcoind",
			Name:      "call_duration_seconds",
			Help:      "duration of calls to bitcoind per method",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)
)

func observeCall(method string, err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	callCounterVec.With(prometheus.Labels{"method": method, "result": result}).Inc()
	callDurationVec.With(prometheus.Labels{"method": method}).Observe(d.Seconds())
}
