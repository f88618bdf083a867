package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Environment     string
	ShutdownTimeout time.Duration
	Auth            Auth
	Database        Database
	Redis           RedisConfig
	Kafka           Kafka
	Events          Events
}

// Auth configures bearer token validation for mutating endpoints.
type Auth struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

// Database configures the Postgres connection. An empty URL selects the
// in-memory stores.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxTimeout       time.Duration
}

// RedisConfig configures the read-through cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// Kafka configures the notification sink. No brokers means events stay local.
type Kafka struct {
	Brokers           []string
	Topic             string
	ClientID          string
	Partitions        int32
	ReplicationFactor int16
}

// Events configures publishing and the outbox relay.
type Events struct {
	AsyncBuffer   int
	RelayInterval time.Duration
	RelayBatch    int
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signingKey := getEnv("REDART_JWT_SIGNING_KEY", "")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:            getEnv("REDART_ADDR", ":8080"),
		Environment:     getEnv("REDART_ENV", "development"),
		ShutdownTimeout: getDuration("REDART_SHUTDOWN_TIMEOUT", 10*time.Second),
		Auth: Auth{
			JWTSigningKey: signingKey,
			Issuer:        getEnv("REDART_JWT_ISSUER", "redart"),
			Audience:      getEnv("REDART_JWT_AUDIENCE", "redart-ledger"),
		},
		Database: Database{
			URL:             getEnv("REDART_DATABASE_URL", ""),
			MaxOpenConns:    getInt("REDART_DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("REDART_DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("REDART_DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			TxTimeout:       getDuration("REDART_DATABASE_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDART_REDIS_URL", ""),
			PoolSize:     getInt("REDART_REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDART_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDART_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDART_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDART_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     getDuration("REDART_REDIS_CACHE_TTL", time.Hour),
		},
		Kafka: Kafka{
			Brokers:           splitList(getEnv("REDART_KAFKA_BROKERS", "")),
			Topic:             getEnv("REDART_KAFKA_TOPIC", "redart.ledger.events"),
			ClientID:          getEnv("REDART_KAFKA_CLIENT_ID", "redart"),
			Partitions:        int32(getInt("REDART_KAFKA_PARTITIONS", 3)),
			ReplicationFactor: int16(getInt("REDART_KAFKA_REPLICATION_FACTOR", 1)),
		},
		Events: Events{
			AsyncBuffer:   getInt("REDART_EVENTS_ASYNC_BUFFER", 1024),
			RelayInterval: getDuration("REDART_EVENTS_RELAY_INTERVAL", time.Second),
			RelayBatch:    getInt("REDART_EVENTS_RELAY_BATCH", 100),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
