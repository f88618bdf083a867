package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	copyrightservice "redart/internal/copyright/service"
	copyrightstore "redart/internal/copyright/store"
	"redart/internal/events"
	"redart/internal/events/kafka"
	eventmetrics "redart/internal/events/metrics"
	"redart/internal/events/relay"
	eventstore "redart/internal/events/store/memory"
	"redart/internal/events/store/outbox"
	graphservice "redart/internal/graph/service"
	graphstore "redart/internal/graph/store"
	opusservice "redart/internal/opus/service"
	opusstore "redart/internal/opus/store"
	"redart/internal/platform/config"
	"redart/internal/platform/postgres"
	redisclient "redart/internal/platform/redis"
	royaltyservice "redart/internal/royalty/service"
	royaltystore "redart/internal/royalty/store"
	httptransport "redart/internal/transport/http"
	txcontext "redart/pkg/platform/tx"
)

// backends holds the storage and event plumbing selected by configuration.
type backends struct {
	kind      string
	copyright copyrightservice.Store
	graph     graphservice.Store
	royalty   royaltyservice.Store
	opus      opusservice.Store
	tx        txcontext.Runner
	events    events.Store
	relay     *relay.Relay

	db    *sql.DB
	redis *redisclient.Client
	kafka *kgo.Client
}

// openBackends uses Postgres when a database URL is configured and the
// in-memory stores otherwise. Redis and Kafka are layered on when configured.
func openBackends(ctx context.Context, cfg config.Server, logger *slog.Logger, m *eventmetrics.Metrics) (*backends, error) {
	b := &backends{}
	if cfg.Database.URL == "" {
		b.kind = "memory"
		b.copyright = copyrightstore.NewInMemory()
		b.graph = graphstore.NewInMemory()
		b.royalty = royaltystore.NewInMemory()
		b.opus = opusstore.NewInMemory()
		b.tx = txcontext.NoopRunner{}
	} else {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		b.db = db
		if err := postgres.Migrate(ctx, db); err != nil {
			b.Close()
			return nil, err
		}
		b.kind = "postgres"
		b.copyright = copyrightstore.NewPostgres(db)
		b.graph = graphstore.NewPostgres(db)
		b.royalty = royaltystore.NewPostgres(db)
		b.opus = opusstore.NewPostgres(db)
		b.tx = txcontext.NewSQLRunner(db, cfg.Database.TxTimeout)
	}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		b.Close()
		return nil, err
	}
	if rc != nil {
		b.redis = rc
		b.copyright = copyrightstore.NewRedisCache(b.copyright, rc.Client,
			copyrightstore.WithCacheTTL(cfg.Redis.CacheTTL),
			copyrightstore.WithCacheLogger(logger),
		)
		b.royalty = royaltystore.NewRedisCache(b.royalty, rc.Client,
			royaltystore.WithCacheTTL(cfg.Redis.CacheTTL),
			royaltystore.WithCacheLogger(logger),
		)
	}

	if err := b.openEvents(ctx, cfg, logger, m); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// openEvents picks the event sink. With Postgres, events go to the outbox in
// the same transaction as the ledger write and a relay forwards them to
// Kafka. Without Postgres they go straight to Kafka, or stay in memory.
func (b *backends) openEvents(ctx context.Context, cfg config.Server, logger *slog.Logger, m *eventmetrics.Metrics) error {
	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		client, err := kafka.NewClient(ctx, cfg.Kafka)
		if err != nil {
			return err
		}
		b.kafka = client
		if err := kafka.EnsureTopic(ctx, client, cfg.Kafka); err != nil {
			return err
		}
		producer = kafka.NewProducer(client, cfg.Kafka.Topic)
	}

	switch {
	case b.db != nil:
		store := outbox.New(b.db)
		b.events = store
		if producer != nil {
			b.relay = relay.New(store, producer, txcontext.NewSQLRunner(b.db, cfg.Database.TxTimeout),
				relay.WithInterval(cfg.Events.RelayInterval),
				relay.WithBatchSize(cfg.Events.RelayBatch),
				relay.WithLogger(logger),
				relay.WithMetrics(m),
			)
		}
	case producer != nil:
		b.events = kafka.NewStore(producer)
	default:
		b.events = eventstore.NewInMemoryStore()
	}
	return nil
}

// transactional reports whether events commit with the ledger write. Only
// then must the publisher emit synchronously.
func (b *backends) transactional() bool {
	return b.db != nil
}

func (b *backends) healthChecks() map[string]httptransport.HealthCheck {
	checks := make(map[string]httptransport.HealthCheck)
	if b.db != nil {
		checks["postgres"] = b.db.PingContext
	}
	if b.redis != nil {
		checks["redis"] = b.redis.Health
	}
	if b.kafka != nil {
		checks["kafka"] = b.kafka.Ping
	}
	return checks
}

func (b *backends) Close() error {
	var errs []error
	if b.kafka != nil {
		b.kafka.Close()
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}
	return errors.Join(errs...)
}
