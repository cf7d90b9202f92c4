package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// Notifier — односторонний канал сообщений пользователю. Ошибок не возвращает.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// NotificationFeed — последние уведомления для UI (новые первыми).
type NotificationFeed interface {
	List(ctx context.Context, limit, offset int) []domain.Notification
}
