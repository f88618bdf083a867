package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the royalty manager.
type Metrics struct {
	Registrations    *prometheus.CounterVec
	RegisterDuration prometheus.Histogram
	ChainLength      prometheus.Histogram
	Quotes           *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_royalty_registrations_total",
			Help: "RegisterRoyaltyList outcomes by result code",
		}, []string{"outcome"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "redart_royalty_register_duration_seconds",
			Help:    "Duration of RegisterRoyaltyList operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ChainLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "redart_royalty_chain_items",
			Help:    "Number of line items in registered royalty chains",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		}),
		Quotes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_royalty_quotes_total",
			Help: "Sale-time royalty computations by kind (total, split)",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveRegister records the duration of a RegisterRoyaltyList call started at start.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveChainLength(n int) {
	if m == nil {
		return
	}
	m.ChainLength.Observe(float64(n))
}

func (m *Metrics) IncQuote(kind string) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues(kind).Inc()
}
