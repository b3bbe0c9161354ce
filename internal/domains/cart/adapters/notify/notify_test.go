package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.messages = append(f.messages, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaNotifier_PublishesKeyedJSON(t *testing.T) {
	writer := &fakeWriter{}
	n := newKafkaNotifier(writer, slog.Default())
	n.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }

	n.Notify(context.Background(), ports.Notification{Kind: ports.NotificationSuccess, Title: "Added to cart", Message: "ok", CartID: "c1"})

	require.Len(t, writer.messages, 1)
	require.Equal(t, "c1", string(writer.messages[0].Key))
	var body map[string]any
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &body))
	require.Equal(t, "success", body["kind"])
	require.Equal(t, "Added to cart", body["title"])
	require.Equal(t, "2024-05-01T10:30:00Z", body["occurredAt"])
}

func TestKafkaNotifier_SwallowsWriteErrors(t *testing.T) {
	var logs bytes.Buffer
	writer := &fakeWriter{err: errors.New("broker down")}
	n := newKafkaNotifier(writer, slog.New(slog.NewTextHandler(&logs, nil)))

	n.Notify(context.Background(), ports.Notification{Kind: ports.NotificationError, Title: "Cart is empty"})
	require.Contains(t, logs.String(), "broker down")
}

func TestNewKafkaNotifier_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaNotifier(nil, "", nil)
	require.Error(t, err)
}

func TestLogNotifier_WarnsOnErrors(t *testing.T) {
	var logs bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&logs, nil)))
	n.Notify(context.Background(), ports.Notification{Kind: ports.NotificationError, Title: "Removed from cart", CartID: "c9"})
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "cart.id=c9")
}
