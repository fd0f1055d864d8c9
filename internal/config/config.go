package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
	SampleRatio    float64
}

// KafkaConfig holds broker settings for purchase events
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

// Config holds the configuration shared by the storefront binaries
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       string
	HTTPPort       string
	SeedFile       string
	RequestTimeout time.Duration
	Tracing        TracingConfig
	Kafka          KafkaConfig
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment.
// serviceName and defaultPort are the per-binary defaults.
func Load(serviceName, defaultPort string) *Config {
	return &Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", serviceName),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", defaultPort),
		SeedFile:       getEnv("SEED_FILE", ""),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		Tracing: TracingConfig{
			Enabled:        getBool("TRACING_ENABLED", false),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			SampleRatio:    getFloat("TRACING_SAMPLE_RATIO", 1),
		},
		Kafka: KafkaConfig{
			Enabled: getBool("KAFKA_ENABLED", false),
			Brokers: getList("KAFKA_BROKERS", []string{"localhost:9092"}),
			GroupID: getEnv("KAFKA_GROUP_ID", "sales-ledger"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
