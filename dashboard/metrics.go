package dashboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	prom "github.com/harmony-one/btcdash/api/service/prometheus"
	"github.com/harmony-one/btcdash/internal/apierr"
)

func init() {
	prom.PromRegistry().MustRegister(
		snapshotCounterVec,
		snapshotDuration,
	)
}

var (
	snapshotCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "btcdash",
			Subsystem: "dashboard",
			Name:      "snapshots_total",
			Help:      "number of dashboard snapshots per result",
		},
		[]string{"result"},
	)

	snapshotDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "btcdash",
			Subsystem: "dashboard",
			Name:      "snapshot_duration_seconds",
			Help:      "duration of a dashboard snapshot",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)
)

func observeSnapshot(err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = apierr.KindOf(err).String()
	}
	snapshotCounterVec.With(prometheus.Labels{"result": result}).Inc()
	snapshotDuration.Observe(d.Seconds())
}
