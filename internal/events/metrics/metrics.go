package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for event emission and relay.
type Metrics struct {
	Emitted         *prometheus.CounterVec
	Dropped         prometheus.Counter
	PersistFailures prometheus.Counter
	Relayed         prometheus.Counter
	RelayFailures   prometheus.Counter
	OutboxBacklog   prometheus.Gauge
}

// New creates a new Metrics instance with event metrics registered.
func New() *Metrics {
	return &Metrics{
		Emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "redart_events_emitted_total",
			Help: "Ledger events accepted by the publisher, by type",
		}, []string{"type"}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "redart_events_dropped_total",
			Help: "Ledger events dropped because the async buffer was full",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "redart_events_persist_failures_total",
			Help: "Async event store failures",
		}),
		Relayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "redart_events_relayed_total",
			Help: "Outbox entries published to the broker",
		}),
		RelayFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "redart_events_relay_failures_total",
			Help: "Outbox relay batches that failed",
		}),
		OutboxBacklog: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "redart_events_outbox_batch_size",
			Help: "Entries picked up by the most recent relay batch",
		}),
	}
}

func (m *Metrics) IncEmitted(eventType string) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

func (m *Metrics) IncPersistFailures() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) AddRelayed(n int) {
	if m == nil {
		return
	}
	m.Relayed.Add(float64(n))
}

func (m *Metrics) IncRelayFailures() {
	if m == nil {
		return
	}
	m.RelayFailures.Inc()
}

func (m *Metrics) SetBatchSize(n int) {
	if m == nil {
		return
	}
	m.OutboxBacklog.Set(float64(n))
}
