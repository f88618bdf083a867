// Package publisher fronts an events.Store. In sync mode Emit writes through
// with the caller's context, so an outbox store joins the caller's
// transaction. In async mode events are buffered and written by a single
// goroutine; a full buffer drops the event with events.ErrDropped.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"redart/internal/events"
	"redart/internal/events/metrics"
	"redart/pkg/requestcontext"
)

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("event publisher closed")

// Publisher implements events.Emitter.
type Publisher struct {
	store   events.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	buffer chan events.Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to buffered mode.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan events.Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher over store.
func NewPublisher(store events.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

// Emit stamps the event with an ID, time and request ID when missing and
// hands it to the store.
func (p *Publisher) Emit(ctx context.Context, event events.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	if p.buffer == nil {
		if err := p.store.Append(ctx, event); err != nil {
			return err
		}
		p.metrics.IncEmitted(string(event.Type))
		return nil
	}

	select {
	case p.buffer <- event:
		p.metrics.IncEmitted(string(event.Type))
		return nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.metrics.IncDropped()
	p.logger.WarnContext(ctx, "event dropped",
		"event_type", event.Type,
		"ruid", event.RUID.String(),
		"request_id", event.RequestID,
	)
	return events.ErrDropped
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.buffer {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.store.Append(ctx, event); err != nil {
			p.metrics.IncPersistFailures()
			p.logger.Error("failed to persist event",
				"error", err,
				"event_type", event.Type,
				"ruid", event.RUID.String(),
			)
		}
		cancel()
	}
}

// Close stops accepting events and drains the buffer.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	if p.buffer != nil {
		close(p.buffer)
		<-p.done
	}
}
