package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

var (
	_ ports.Notifier         = (*Feed)(nil)
	_ ports.NotificationFeed = (*Feed)(nil)
)

// DefaultFeedSize — ёмкость ленты по умолчанию.
const DefaultFeedSize = 50

// Feed — кольцевой буфер последних уведомлений. При переполнении вытесняются самые старые.
type Feed struct {
	mu    sync.RWMutex
	buf   []domain.Notification
	next  int
	count int

	now   func() time.Time
	newID func() string
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{
		buf:   make([]domain.Notification, size),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func (f *Feed) Error(_ context.Context, message string) {
	n := domain.Notification{ID: f.newID(), Message: message, At: f.now().UTC()}

	f.mu.Lock()
	f.buf[f.next] = n
	f.next = (f.next + 1) % len(f.buf)
	if f.count < len(f.buf) {
		f.count++
	}
	f.mu.Unlock()

	metrics.Notifications.WithLabelValues("feed").Inc()
}

// List — новые первыми; offset за пределами ленты даёт пустой срез.
func (f *Feed) List(_ context.Context, limit, offset int) []domain.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= f.count || limit <= 0 {
		return []domain.Notification{}
	}
	if limit > f.count-offset {
		limit = f.count - offset
	}

	out := make([]domain.Notification, 0, limit)
	for i := offset; i < offset+limit; i++ {
		// i-е с конца: next-1 — самое свежее
		idx := (f.next - 1 - i + 2*len(f.buf)) % len(f.buf)
		out = append(out, f.buf[idx])
	}
	return out
}
