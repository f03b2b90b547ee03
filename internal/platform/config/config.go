package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean. Optional backends (postgres, redis, kafka) stay nil/empty when
// unset and the service falls back to in-process equivalents.
type Config struct {
	Addr string

	// DatabaseURL enables the postgres stores. Empty means in-memory.
	DatabaseURL string

	// RedisURL enables the cross-instance live-event backplane.
	RedisURL string

	// KafkaBrokers enables best-effort forwarding of audit records to
	// KafkaAuditTopic for downstream compliance sinks.
	KafkaBrokers    []string
	KafkaAuditTopic string

	// LiveChannel is the redis pub/sub channel carrying notification signals.
	LiveChannel string

	JWTSigningKey string

	RequestTimeout time.Duration
}

// FromEnv builds a Config from environment variables with dev defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:            getenv("BACKOFFICE_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaAuditTopic: getenv("KAFKA_AUDIT_TOPIC", "backoffice.audit"),
		LiveChannel:     getenv("LIVE_CHANNEL", "backoffice:notifications"),
		JWTSigningKey:   getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		RequestTimeout:  30 * time.Second,
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
