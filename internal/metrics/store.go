package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_store",
		Name:      "operations_total",
		Help:      "Count of sorted index operations.",
	}, []string{"operation", "index", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "clickhouse_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of sorted index operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "index", "status"})
)

// ClickhouseStore tracks metrics for ClickHouse index operations.
type ClickhouseStore struct{}

func NewClickhouseStore() *ClickhouseStore {
	return &ClickhouseStore{}
}

// Observe records duration and status of an operation on index.
func (m ClickhouseStore) Observe(operation, index string, err error, started time.Time) {
	if index == "" {
		index = "unknown"
	}
	s := status(err)
	storeOperationsTotal.WithLabelValues(operation, index, s).Inc()
	storeOperationDuration.WithLabelValues(operation, index, s).Observe(time.Since(started).Seconds())
}
