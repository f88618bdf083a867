//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"redart/internal/platform/config"
	redisclient "redart/internal/platform/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer is a disposable cache backend for the read-through stores.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts redis and connects through the same client
// constructor the server uses. The shared Manager owns its lifetime.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	fail := func(step string, err error) {
		_ = container.Terminate(ctx)
		t.Fatalf("%s: %v", step, err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		fail("redis connection string", err)
	}
	rc, err := redisclient.New(ctx, config.RedisConfig{URL: url, DialTimeout: 10 * time.Second})
	if err != nil {
		fail("connect redis", err)
	}

	return &RedisContainer{Container: container, URL: url, Client: rc.Client}
}

// FlushAll drops every cached record between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
