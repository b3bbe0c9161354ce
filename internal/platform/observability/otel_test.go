package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestNewLogger_TagsServiceAndHonoursLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, Settings{ServiceName: "storefront-api", Environment: "staging", Level: slog.LevelWarn})
	logger.Info("dropped")
	logger.Warn("kept", slog.String("cartId", "c-1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "storefront-api", entry["service"])
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "c-1", entry["cartId"])
	assert.Contains(t, entry, "source")
	assert.Same(t, logger, slog.Default())
}

func TestServiceAttributes(t *testing.T) {
	attrs := serviceAttributes(Settings{ServiceName: "cart-purger", Environment: "local"})
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("service.name", "cart-purger"),
		attribute.String("service.namespace", ServiceNamespace),
		attribute.String("deployment.environment", "local"),
	}, attrs)
}
