package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"redart/internal/royalty/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/circuit"
	txcontext "redart/pkg/platform/tx"
)

var (
	cacheLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "redart_royalty_cache_lookup_duration_ms",
		Help:    "Latency of royalty chain cache lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
	cacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redart_royalty_cache_results_total",
		Help: "Royalty chain cache lookups by result (hit, miss, error, bypass)",
	}, []string{"result"})
)

const chainKeyPrefix = "redart:royalty:"

// Backend is the authoritative chain store behind the cache.
type Backend interface {
	Create(ctx context.Context, chain *models.Chain) error
	FindByRUID(ctx context.Context, ruid id.RUID) (*models.Chain, error)
	Exists(ctx context.Context, ruid id.RUID) (bool, error)
}

// RedisCache caches committed chains, which never change after registration.
// Sale-time queries (totals, splits, royalty info) read the same chain over
// and over, so they are served from Redis once warmed.
type RedisCache struct {
	backend Backend
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// RedisCacheOption configures a RedisCache instance.
type RedisCacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

func WithCacheBreaker(b *circuit.Breaker) RedisCacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

func NewRedisCache(backend Backend, client *redis.Client, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		backend: backend,
		client:  client,
		ttl:     time.Hour,
		breaker: circuit.New("royalty-cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) Create(ctx context.Context, chain *models.Chain) error {
	return c.backend.Create(ctx, chain)
}

func (c *RedisCache) FindByRUID(ctx context.Context, ruid id.RUID) (*models.Chain, error) {
	if !c.usable(ctx) {
		cacheResults.WithLabelValues("bypass").Inc()
		return c.backend.FindByRUID(ctx, ruid)
	}

	if chain, ok := c.get(ctx, ruid); ok {
		return chain, nil
	}

	chain, err := c.backend.FindByRUID(ctx, ruid)
	if err != nil {
		return nil, err
	}
	c.set(ctx, chain)
	return chain, nil
}

func (c *RedisCache) Exists(ctx context.Context, ruid id.RUID) (bool, error) {
	if c.usable(ctx) {
		if _, ok := c.get(ctx, ruid); ok {
			return true, nil
		}
	}
	return c.backend.Exists(ctx, ruid)
}

func (c *RedisCache) usable(ctx context.Context) bool {
	if _, inTx := txcontext.From(ctx); inTx {
		return false
	}
	return c.breaker.Allow()
}

func (c *RedisCache) get(ctx context.Context, ruid id.RUID) (*models.Chain, bool) {
	start := time.Now()
	defer func() {
		cacheLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := c.client.Get(ctx, chainKeyPrefix+ruid.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		c.breaker.RecordSuccess()
		cacheResults.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		c.recordFailure(ctx, "get", err)
		return nil, false
	}
	c.breaker.RecordSuccess()

	var chain models.Chain
	if err := json.Unmarshal(raw, &chain); err != nil {
		cacheResults.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "discarding undecodable cached royalty chain", "ruid", ruid.String(), "error", err)
		return nil, false
	}
	cacheResults.WithLabelValues("hit").Inc()
	return &chain, true
}

func (c *RedisCache) set(ctx context.Context, chain *models.Chain) {
	raw, err := json.Marshal(chain)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, chainKeyPrefix+chain.RUID.String(), raw, c.ttl).Err(); err != nil {
		c.recordFailure(ctx, "set", err)
		return
	}
	c.breaker.RecordSuccess()
}

func (c *RedisCache) recordFailure(ctx context.Context, op string, err error) {
	cacheResults.WithLabelValues("error").Inc()
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "royalty cache disabled after repeated failures",
			"op", op,
			"error", err,
		)
	}
}
