package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redart/internal/platform/config"
)

func TestNewWithoutURLDisablesCache(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "mysql://cache:6379"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis URL")
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, config.RedisConfig{URL: "redis://127.0.0.1:1/0", DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestOptionsOverridesOnlyConfiguredValues(t *testing.T) {
	opts, err := Options(config.RedisConfig{
		URL:         "redis://cache:6380/2",
		PoolSize:    25,
		ReadTimeout: 750 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 750*time.Millisecond, opts.ReadTimeout)
	assert.Zero(t, opts.MinIdleConns)
	assert.Zero(t, opts.WriteTimeout, "unset values keep the go-redis default")
}
