// Package notify — получатели пользовательских уведомлений (toast): лог, лента для UI, Kafka.
package notify

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier — пишет уведомление в лог уровнем warn.
type LogNotifier struct {
	log ports.Logger
}

func NewLogNotifier(log ports.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) Error(ctx context.Context, message string) {
	metrics.Notifications.WithLabelValues("log").Inc()
	n.log.Warnf(ctx, "user notification message=%q", message)
}

// Fanout — рассылает уведомление всем получателям по порядку.
type Fanout []ports.Notifier

func NewFanout(notifiers ...ports.Notifier) Fanout {
	out := make(Fanout, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (f Fanout) Error(ctx context.Context, message string) {
	for _, n := range f {
		n.Error(ctx, message)
	}
}
