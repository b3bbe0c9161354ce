package notify

import (
	"context"
	"log/slog"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note ports.Notification) {
	level := slog.LevelInfo
	if note.Kind == ports.NotificationError {
		level = slog.LevelWarn
	}
	n.logger.LogAttrs(ctx, level, note.Title,
		slog.String("notification.kind", string(note.Kind)),
		slog.String("notification.message", note.Message),
		slog.String("cart.id", note.CartID),
	)
}
