package metrics

import (
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var unhandledDfTxTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "extractor",
	Name:      "unhandled_dftx_total",
	Help:      "Count of custom transactions without an address extractor.",
}, []string{"network", "type"})

// Extractor tracks custom transactions the address extractor skips.
type Extractor struct {
	network string
}

func NewExtractor(network model.Network) *Extractor {
	return &Extractor{network: networkLabel(network)}
}

func (m Extractor) ObserveUnhandledDfTx(txType string) {
	unhandledDfTxTotal.WithLabelValues(m.network, txType).Inc()
}
