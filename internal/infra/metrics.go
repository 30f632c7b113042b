// README: Prometheus metrics for status propagation and snapshot rebuilds.
package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StatusUpdatesApplied prometheus.Counter
	PropagationErrors    *prometheus.CounterVec
	SnapshotRebuilds     prometheus.Counter
	SnapshotRebuildTime  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StatusUpdatesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_applied_total",
			Help:      "The total number of farm-out status updates applied",
		}),
		PropagationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagation_errors_total",
			Help:      "The total number of propagation failures by kind",
		}, []string{"kind"}),
		SnapshotRebuilds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_rebuilds_total",
			Help:      "The total number of assignment snapshot rebuilds",
		}),
		SnapshotRebuildTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_rebuild_seconds",
			Help:      "Time taken to rebuild the assignment snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
