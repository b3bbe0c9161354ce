package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/notify"
	cartpostgres "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

// Config carries environment-driven settings for the storefront processes.
type Config struct {
	Port                    string
	PostgresDSN             string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	CartSnapshotTTL         time.Duration
	KafkaBrokers            []string
	KafkaNotificationsTopic string
	TemporalAddress         string
	TemporalNamespace       string
	TemporalDisabled        bool
	SeedCatalog             bool
	LogLevel                string
	Environment             string
	OTLPEndpoint            string
	OTLPInsecure            bool
}

// LoadConfig reads the environment (and CONFIG_FILE when set), applies defaults and validates numerics.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_DB", "0")
	v.SetDefault("KAFKA_NOTIFICATIONS_TOPIC", notify.DefaultTopic)
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("SEED_CATALOG", "true")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "local")

	if path := strings.TrimSpace(v.GetString("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:                    strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN:             strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		RedisAddr:               strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		KafkaBrokers:            splitList(v.GetString("KAFKA_BROKERS")),
		KafkaNotificationsTopic: strings.TrimSpace(v.GetString("KAFKA_NOTIFICATIONS_TOPIC")),
		TemporalAddress:         strings.TrimSpace(v.GetString("TEMPORAL_ADDRESS")),
		TemporalNamespace:       strings.TrimSpace(v.GetString("TEMPORAL_NAMESPACE")),
		TemporalDisabled:        isTruthy(v.GetString("TEMPORAL_DISABLED")),
		SeedCatalog:             isTruthy(v.GetString("SEED_CATALOG")),
		LogLevel:                strings.TrimSpace(v.GetString("LOG_LEVEL")),
		Environment:             strings.TrimSpace(v.GetString("ENVIRONMENT")),
		OTLPEndpoint:            strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:            strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	db, err := strconv.Atoi(strings.TrimSpace(v.GetString("REDIS_DB")))
	if err != nil || db < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
	}
	cfg.RedisDB = db

	cfg.CartSnapshotTTL = cartpostgres.DefaultSnapshotTTL
	if raw := strings.TrimSpace(v.GetString("CART_SNAPSHOT_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("CART_SNAPSHOT_TTL_HOURS must be a positive integer")
		}
		cfg.CartSnapshotTTL = time.Duration(hours) * time.Hour
	}
	return cfg, nil
}

// Telemetry returns the observability settings for the named process.
func (c Config) Telemetry(serviceName string) observability.Settings {
	return observability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		Level:        observability.ParseLevel(c.LogLevel),
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
