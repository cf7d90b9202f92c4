package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = 1 * time.Second
	defaultRetryMax       = 30 * time.Second

	// потолок первой паузы после временной ошибки обработчика
	handlePauseCap = 500 * time.Millisecond
)

// ConsumerConfig — параметры чтения топика событий каталога.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string        // first|last, всё остальное трактуется как last
	MaxWait     time.Duration // 0: значение kafka-go

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// withDefaults — копия конфига с заполненными таймаутами.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = defaultProcessTimeout
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = defaultRetryInitial
	}
	if c.RetryMax <= 0 {
		c.RetryMax = defaultRetryMax
	}
	if c.RetryMax < c.RetryInitial {
		c.RetryMax = c.RetryInitial
	}
	return c
}

// ReaderConfig — конфиг kafka.Reader. CommitInterval=0: оффсеты коммитит Consumer.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MaxWait:        c.MaxWait,
		StartOffset:    startOffset(c.StartOffset),
		CommitInterval: 0,
	}
}

func startOffset(s string) int64 {
	if strings.EqualFold(strings.TrimSpace(s), "first") {
		return kafka.FirstOffset
	}
	return kafka.LastOffset
}
