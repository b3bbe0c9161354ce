package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Notifier = (*KafkaNotifier)(nil)

// DefaultTopic receives storefront notifications when none is configured.
const DefaultTopic = "storefront.notifications"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications as JSON messages keyed by cart id.
// Writes are asynchronous; delivery failures are only logged.
type KafkaNotifier struct {
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

type notificationMessage struct {
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CartID     string    `json:"cartId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewKafkaNotifier builds an async producer for topic on brokers.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            3,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("failed to publish notifications", slog.Int("count", len(messages)), slog.String("error", err.Error()))
			}
		},
	}
	return newKafkaNotifier(writer, logger), nil
}

func newKafkaNotifier(writer messageWriter, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, logger: logger, now: time.Now}
}

func (n *KafkaNotifier) Notify(ctx context.Context, note ports.Notification) {
	payload, err := json.Marshal(notificationMessage{
		Kind:       string(note.Kind),
		Title:      note.Title,
		Message:    note.Message,
		CartID:     note.CartID,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		n.logger.WarnContext(ctx, "failed to encode notification", slog.String("error", err.Error()))
		return
	}
	msg := kafka.Message{Key: []byte(note.CartID), Value: payload}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.WarnContext(ctx, "failed to enqueue notification", slog.String("error", err.Error()))
	}
}

// Close flushes pending messages.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
