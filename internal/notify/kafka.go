package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
)

var _ ports.Notifier = (*KafkaNotifier)(nil)

// messageWriter — то, что нужно от *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// notificationMessage — формат сообщения в топике уведомлений.
type notificationMessage struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// KafkaNotifier — публикует уведомления в топик для внешних получателей.
// Ошибки записи только логируются: уведомление не должно ломать операцию корзины.
type KafkaNotifier struct {
	writer messageWriter
	log    ports.Logger
	now    func() time.Time
	async  bool // итог доставки приходит в delivered, а не из WriteMessages
}

// NewKafkaNotifier — поверх синхронного writer: итог известен по возврату WriteMessages.
func NewKafkaNotifier(writer messageWriter, log ports.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, log: log, now: time.Now}
}

// NewAsyncKafkaNotifier — асинхронный writer; доставка и ошибки брокера учитываются по Completion.
func NewAsyncKafkaNotifier(brokers []string, topic string, log ports.Logger) *KafkaNotifier {
	n := &KafkaNotifier{log: log, now: time.Now, async: true}
	n.writer = NewKafkaWriter(brokers, topic, n.delivered)
	return n
}

// NewKafkaWriter — асинхронный writer: WriteMessages не ждёт брокера, итог пакета уходит в completion.
func NewKafkaWriter(brokers []string, topic string, completion func([]kafka.Message, error)) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion:   completion,
	}
}

func (n *KafkaNotifier) Error(ctx context.Context, message string) {
	payload, err := json.Marshal(notificationMessage{Message: message, At: n.now().UTC()})
	if err != nil {
		n.log.Errorf(ctx, "marshal notification err=%v", err)
		return
	}
	// traceparent в заголовках связывает уведомление с запросом к корзине
	var headers headerCarrier
	telemetry.Propagator().Inject(ctx, &headers)

	msg := kafka.Message{Value: payload, Headers: headers}
	// отмена запроса не должна отменять публикацию
	if err := n.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		metrics.NotificationFailures.WithLabelValues("kafka").Inc()
		n.log.Errorf(ctx, "publish notification failed err=%v", err)
		return
	}
	if !n.async {
		metrics.Notifications.WithLabelValues("kafka").Inc()
	}
}

// delivered — Completion асинхронного writer: вызывается после ответа брокера на пакет.
func (n *KafkaNotifier) delivered(msgs []kafka.Message, err error) {
	if err == nil {
		metrics.Notifications.WithLabelValues("kafka").Add(float64(len(msgs)))
		return
	}
	metrics.NotificationFailures.WithLabelValues("kafka").Add(float64(len(msgs)))

	ctx := context.Background()
	if len(msgs) > 0 {
		hc := headerCarrier(msgs[0].Headers)
		ctx = telemetry.Propagator().Extract(ctx, &hc)
	}
	n.log.Errorf(ctx, "notification delivery failed messages=%d err=%v", len(msgs), err)
}

func (n *KafkaNotifier) Close() error { return n.writer.Close() }

// headerCarrier — заголовки Kafka-сообщения как propagation.TextMapCarrier.
type headerCarrier []kafka.Header

func (h *headerCarrier) Get(key string) string {
	for _, hdr := range *h {
		if hdr.Key == key {
			return string(hdr.Value)
		}
	}
	return ""
}

func (h *headerCarrier) Set(key, value string) {
	for i := range *h {
		if (*h)[i].Key == key {
			(*h)[i].Value = []byte(value)
			return
		}
	}
	*h = append(*h, kafka.Header{Key: key, Value: []byte(value)})
}

func (h *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*h))
	for _, hdr := range *h {
		keys = append(keys, hdr.Key)
	}
	return keys
}
