package metrics

import (
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recomputerBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "recomputer",
		Name:      "batches_total",
		Help:      "Count of drained address batches.",
	}, []string{"network", "status"})

	recomputerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "recomputer",
		Name:      "batch_duration_seconds",
		Help:      "Duration of recomputing a batch of addresses.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"network", "status"})

	recomputerAddressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "recomputer",
		Name:      "addresses_total",
		Help:      "Count of addresses whose balances were written.",
	}, []string{"network"})

	recomputerQueueLength = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "recomputer",
		Name:      "queue_length",
		Help:      "Number of addresses waiting in the active address queue.",
	}, []string{"network"})
)

// Recomputer tracks metrics for the balance recomputer.
type Recomputer struct {
	network string
}

// NewRecomputer constructs a Recomputer collector for network.
func NewRecomputer(network model.Network) *Recomputer {
	return &Recomputer{network: networkLabel(network)}
}

// ObserveBatch records a drained batch.
func (m Recomputer) ObserveBatch(err error, addresses int, started time.Time) {
	s := status(err)
	recomputerBatchesTotal.WithLabelValues(m.network, s).Inc()
	recomputerBatchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err == nil {
		recomputerAddressesTotal.WithLabelValues(m.network).Add(float64(addresses))
	}
}

func (m Recomputer) ObserveQueueLength(length int64) {
	recomputerQueueLength.WithLabelValues(m.network).Set(float64(length))
}
