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

	"redart/internal/copyright/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/circuit"
	txcontext "redart/pkg/platform/tx"
)

var (
	cacheLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "redart_registration_cache_lookup_duration_ms",
		Help:    "Latency of registration cache lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
	cacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redart_registration_cache_results_total",
		Help: "Registration cache lookups by result (hit, miss, error, bypass)",
	}, []string{"result"})
)

const registrationKeyPrefix = "redart:registration:"

// Backend is the authoritative registration store behind the cache.
type Backend interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByRUID(ctx context.Context, ruid id.RUID) (*models.Registration, error)
	Exists(ctx context.Context, ruid id.RUID) (bool, error)
}

// RedisCache is a read-through cache in front of a Backend. Registrations are
// immutable once committed, so entries never need invalidation; only positive
// lookups are cached. Lookups inside a transaction bypass the cache so that
// uncommitted rows are never published to other readers.
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
		breaker: circuit.New("registration-cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) Create(ctx context.Context, reg *models.Registration) error {
	return c.backend.Create(ctx, reg)
}

func (c *RedisCache) FindByRUID(ctx context.Context, ruid id.RUID) (*models.Registration, error) {
	if !c.usable(ctx) {
		cacheResults.WithLabelValues("bypass").Inc()
		return c.backend.FindByRUID(ctx, ruid)
	}

	if reg, ok := c.get(ctx, ruid); ok {
		return reg, nil
	}

	reg, err := c.backend.FindByRUID(ctx, ruid)
	if err != nil {
		return nil, err
	}
	c.set(ctx, reg)
	return reg, nil
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

func (c *RedisCache) get(ctx context.Context, ruid id.RUID) (*models.Registration, bool) {
	start := time.Now()
	defer func() {
		cacheLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := c.client.Get(ctx, registrationKeyPrefix+ruid.String()).Bytes()
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

	var reg models.Registration
	if err := json.Unmarshal(raw, &reg); err != nil {
		cacheResults.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "discarding undecodable cached registration", "ruid", ruid.String(), "error", err)
		return nil, false
	}
	cacheResults.WithLabelValues("hit").Inc()
	return &reg, true
}

func (c *RedisCache) set(ctx context.Context, reg *models.Registration) {
	raw, err := json.Marshal(reg)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, registrationKeyPrefix+reg.RUID.String(), raw, c.ttl).Err(); err != nil {
		c.recordFailure(ctx, "set", err)
		return
	}
	c.breaker.RecordSuccess()
}

func (c *RedisCache) recordFailure(ctx context.Context, op string, err error) {
	cacheResults.WithLabelValues("error").Inc()
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "registration cache disabled after repeated failures",
			"op", op,
			"error", err,
		)
	}
}
