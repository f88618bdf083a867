package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"redart/internal/platform/config"
)

// Client is the connection shared by the registration and royalty caches.
type Client struct {
	*redis.Client
}

// Options translates cache configuration into go-redis options. Zero values
// keep the go-redis defaults.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	for _, d := range []struct {
		dst *time.Duration
		src time.Duration
	}{
		{&opts.DialTimeout, cfg.DialTimeout},
		{&opts.ReadTimeout, cfg.ReadTimeout},
		{&opts.WriteTimeout, cfg.WriteTimeout},
	} {
		if d.src > 0 {
			*d.dst = d.src
		}
	}
	return opts, nil
}

// New connects and pings. A nil client with a nil error means caching is off.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	c := &Client{Client: redis.NewClient(opts)}
	if err := c.Health(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return c, nil
}

// Health pings the server; it backs the "redis" entry of /health.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
