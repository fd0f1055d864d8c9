package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("storefront", "8081")

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.SeedFile)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)

	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://localhost:14268/api/traces", cfg.Tracing.JaegerEndpoint)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)

	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "sales-ledger", cfg.Kafka.GroupID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "shop-eu")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SEED_FILE", "/etc/storefront/seed.yaml")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_SAMPLE_RATIO", "0.5")
	t.Setenv("KAFKA_ENABLED", "1")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg := Load("storefront", "8081")

	assert.Equal(t, "shop-eu", cfg.ServiceName)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "/etc/storefront/seed.yaml", cfg.SeedFile)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.5, cfg.Tracing.SampleRatio)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("TRACING_ENABLED", "maybe")
	t.Setenv("KAFKA_BROKERS", " , ")

	cfg := Load("storefront", "8081")

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}
