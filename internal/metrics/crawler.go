package metrics

import (
	"time"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	crawlerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "crawler",
		Name:      "blocks_total",
		Help:      "Count of blocks processed by the crawler.",
	}, []string{"network", "status"})

	crawlerBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "crawler",
		Name:      "block_duration_seconds",
		Help:      "Duration of extracting and queueing the addresses of a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	crawlerBlockAddresses = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "crawler",
		Name:      "block_addresses",
		Help:      "Number of distinct addresses queued per block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	crawlerCheckpointHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "crawler",
		Name:      "checkpoint_height",
		Help:      "Height of the last crawled block.",
	}, []string{"network"})

	crawlerInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "crawler",
		Name:      "invalidations_total",
		Help:      "Count of checkpoints rolled back after a reorganization.",
	}, []string{"network", "status"})
)

// Crawler tracks metrics for the block crawler.
type Crawler struct {
	network string
}

// NewCrawler constructs a Crawler collector for network.
func NewCrawler(network model.Network) *Crawler {
	return &Crawler{network: networkLabel(network)}
}

// ObserveBlock records a processed block.
func (m Crawler) ObserveBlock(err error, height uint64, addresses int, started time.Time) {
	s := status(err)
	crawlerBlocksTotal.WithLabelValues(m.network, s).Inc()
	crawlerBlockDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	crawlerBlockAddresses.WithLabelValues(m.network).Observe(float64(addresses))
	crawlerCheckpointHeight.WithLabelValues(m.network).Set(float64(height))
}

// ObserveInvalidation records a rollback of the checkpoint at height.
func (m Crawler) ObserveInvalidation(err error, height uint64, _ time.Time) {
	crawlerInvalidationsTotal.WithLabelValues(m.network, status(err)).Inc()
	if err == nil && height > 0 {
		crawlerCheckpointHeight.WithLabelValues(m.network).Set(float64(height - 1))
	}
}
