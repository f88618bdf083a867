package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for artwork collections.
type Metrics struct {
	Collections prometheus.Counter
	Mints       *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Collections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "redart_opus_collections_created_total",
			Help: "Number of artwork collections created",
		}),
		Mints: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_opus_mints_total",
			Help: "MintArt outcomes by result code",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncCollection() {
	if m == nil {
		return
	}
	m.Collections.Inc()
}

func (m *Metrics) IncMint(outcome string) {
	if m == nil {
		return
	}
	m.Mints.WithLabelValues(outcome).Inc()
}
