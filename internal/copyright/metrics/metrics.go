package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the copyright registry.
type Metrics struct {
	Registrations    *prometheus.CounterVec
	RegisterDuration prometheus.Histogram
	DerivativeLinks  *prometheus.CounterVec
	LinkDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_copyright_registrations_total",
			Help: "RegisterCopyright outcomes (success, already_registered, invalid)",
		}, []string{"outcome"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "redart_copyright_register_duration_seconds",
			Help:    "Duration of RegisterCopyright operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		DerivativeLinks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_copyright_derivative_links_total",
			Help: "LinkDerivative outcomes (success, edge_exists, origin_not_registered, invalid)",
		}, []string{"outcome"}),
		LinkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "redart_copyright_link_duration_seconds",
			Help:    "Duration of LinkDerivative operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncRegistration records a RegisterCopyright outcome.
func (m *Metrics) IncRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveRegister records the duration of a RegisterCopyright operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// IncLink records a LinkDerivative outcome.
func (m *Metrics) IncLink(outcome string) {
	if m == nil {
		return
	}
	m.DerivativeLinks.WithLabelValues(outcome).Inc()
}

// ObserveLink records the duration of a LinkDerivative operation.
func (m *Metrics) ObserveLink(start time.Time) {
	if m == nil {
		return
	}
	m.LinkDuration.Observe(time.Since(start).Seconds())
}
