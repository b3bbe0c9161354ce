package api

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CART_SNAPSHOT_TTL_HOURS", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SEED_CATALOG", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TEMPORAL_ADDRESS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.CartSnapshotTTL)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedCatalog)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("CART_SNAPSHOT_TTL_HOURS", "12")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("SEED_CATALOG", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.CartSnapshotTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.TemporalDisabled)
	assert.False(t, cfg.SeedCatalog)
}

func TestLoadConfig_RejectsBadNumerics(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CART_SNAPSHOT_TTL_HOURS", "soon")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "CART_SNAPSHOT_TTL_HOURS")

	t.Setenv("CART_SNAPSHOT_TTL_HOURS", "")
	t.Setenv("REDIS_DB", "-1")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "REDIS_DB")
}

func TestLoadConfig_ReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nredis_addr: cache:6379\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}

func TestConfig_Telemetry(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " collector:4318 ")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	settings := cfg.Telemetry("storefront-worker")
	assert.Equal(t, "storefront-worker", settings.ServiceName)
	assert.Equal(t, "local", settings.Environment)
	assert.Equal(t, slog.LevelDebug, settings.Level)
	assert.Equal(t, "collector:4318", settings.OTLPEndpoint)
	assert.True(t, settings.OTLPInsecure)

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	settings = cfg.Telemetry("storefront-api")
	assert.Equal(t, "production", settings.Environment)
	assert.False(t, settings.OTLPInsecure)
}
