package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — часть kafka.Reader, которой пользуется Consumer.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// eventHandler — обработчик события каталога (разбор, проверка, сброс кэша).
type eventHandler interface {
	HandleProductEvent(ctx context.Context, raw []byte) error
}

// verdict — что делать с оффсетом после обработки.
type verdict int

const (
	verdictCommit verdict = iota // обработано
	verdictSkip                  // невалидное событие: коммит без повтора
	verdictRetry                 // временная ошибка: повтор того же сообщения
)

// Consumer — читает топик событий каталога и сбрасывает устаревшие карточки.
// Доставка at-least-once: сообщение с временной ошибкой обрабатывается повторно,
// оффсет коммитится только после commit/skip.
type Consumer struct {
	reader  reader
	handler eventHandler
	log     ports.Logger

	processTimeout time.Duration
	fetchRetry     *backoff
	handleRetry    *backoff

	closeOnce sync.Once
	closeErr  error
}

// NewConsumer — Consumer поверх kafka.Reader; незаданные таймауты берутся по умолчанию.
func NewConsumer(cfg *ConsumerConfig, handler eventHandler, log ports.Logger) *Consumer {
	c := cfg.withDefaults()
	return newConsumer(kafka.NewReader(c.ReaderConfig()), handler, log, c)
}

func newConsumer(r reader, h eventHandler, log ports.Logger, cfg ConsumerConfig) *Consumer {
	seed := time.Now().UnixNano()
	pause := min(cfg.RetryInitial, handlePauseCap)
	return &Consumer{
		reader:         r,
		handler:        h,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		fetchRetry:     newBackoff(cfg.RetryInitial, cfg.RetryMax, seed),
		handleRetry:    newBackoff(pause, cfg.RetryMax, seed+1),
	}
}

// Run — цикл чтения. Возвращает ошибку контекста после его отмены.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.fetchRetry.next()
			c.log.Warnf(ctx, "kafka fetch failed err=%v retry_in=%s", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}
		c.fetchRetry.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.handle(ctx, rc.Topic, msg) {
			return ctx.Err()
		}
	}
}

// handle — обрабатывает msg, пока не будет commit/skip; временные ошибки
// повторяются на том же сообщении, следующее не читается. false — контекст отменён.
func (c *Consumer) handle(ctx context.Context, topic string, msg kafka.Message) bool {
	for attempt := 1; ; attempt++ {
		if c.process(ctx, topic, msg) != verdictRetry {
			c.handleRetry.reset()
			c.commit(ctx, msg)
			return true
		}
		wait := c.handleRetry.next()
		c.log.Debugf(ctx, "catalog event retry partition=%d offset=%d attempt=%d retry_in=%s", msg.Partition, msg.Offset, attempt, wait)
		if !sleepCtx(ctx, wait) {
			return false
		}
	}
}

// process — одно сообщение под собственным таймаутом и спаном.
func (c *Consumer) process(ctx context.Context, topic string, msg kafka.Message) verdict {
	ctx, span := telemetry.Tracer().Start(ctx, "catalog.event",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	hctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()

	err := c.handler.HandleProductEvent(hctx, msg.Value)
	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return verdictCommit
	case errors.Is(err, validate.ErrInvalidEvent):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.SetStatus(codes.Error, "invalid event")
		c.log.Warnf(ctx, "catalog event skipped partition=%d offset=%d err=%v", msg.Partition, msg.Offset, err)
		return verdictSkip
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warnf(ctx, "catalog event failed partition=%d offset=%d err=%v (no commit)", msg.Partition, msg.Offset, err)
		return verdictRetry
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.log.Warnf(ctx, "kafka commit failed partition=%d offset=%d err=%v", msg.Partition, msg.Offset, err)
	}
}

// Close — закрывает reader; повторные вызовы возвращают результат первого.
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.reader.Close()
	})
	return c.closeErr
}
