// Package relay moves committed outbox rows to the broker. Delivery is at
// least once: a crash between publish and commit republishes the batch, and
// consumers deduplicate on the event ID.
package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"redart/internal/events"
	"redart/internal/events/metrics"
	"redart/internal/events/store/outbox"
	txcontext "redart/pkg/platform/tx"
)

// Outbox is the subset of outbox.Store the relay needs.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]outbox.Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer publishes one message to the broker.
type Producer interface {
	Publish(ctx context.Context, msg events.Message) error
}

// Relay polls the outbox on an interval.
type Relay struct {
	outbox   Outbox
	producer Producer
	tx       txcontext.Runner
	interval time.Duration
	batch    int
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

// New creates a relay. tx must hold the row locks taken by FetchUnpublished
// until MarkPublished commits.
func New(store Outbox, producer Producer, tx txcontext.Runner, opts ...Option) *Relay {
	r := &Relay{
		outbox:   store,
		producer: producer,
		tx:       tx,
		interval: time.Second,
		batch:    100,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays until ctx is cancelled. Batch failures are logged and retried on
// the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for {
				n, err := r.RelayOnce(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					r.metrics.IncRelayFailures()
					r.logger.ErrorContext(ctx, "outbox relay batch failed", "error", err)
					break
				}
				if n < r.batch {
					break
				}
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were published.
// Entries published before a broker failure are still marked.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	published := 0
	var publishErr error
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := r.outbox.FetchUnpublished(ctx, r.batch)
		if err != nil {
			return err
		}
		r.metrics.SetBatchSize(len(entries))

		done := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			if publishErr = r.producer.Publish(ctx, entry.Message()); publishErr != nil {
				break
			}
			done = append(done, entry.ID)
		}
		if len(done) == 0 {
			return nil
		}
		if err := r.outbox.MarkPublished(ctx, done, r.now()); err != nil {
			return err
		}
		published = len(done)
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.metrics.AddRelayed(published)
	return published, publishErr
}
