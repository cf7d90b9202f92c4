//go:build integration

package testutil

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// Kafka — одноузловой redpanda; топики создаются на тест через Topic.
type Kafka struct {
	Brokers []string
}

func StartKafka(t testing.TB) *Kafka {
	t.Helper()
	ctx := startCtx(t)

	ctr, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycle(t, "redpanda")),
	)
	tc.CleanupContainer(t, ctr)
	require.NoError(t, err, "run redpanda")

	seed, err := ctr.KafkaSeedBroker(ctx)
	require.NoError(t, err)

	return &Kafka{Brokers: []string{seed}}
}

// Topic — новый топик с одной партицией и группа консьюмера под него.
// Имена уникальны, поэтому тесты не видят сообщений друг друга.
func (k *Kafka) Topic(t testing.TB, base string) (topic, group string) {
	t.Helper()

	name := topicName(base + "-" + UniqSuffix())
	require.NoError(t, k.createTopic(name))

	require.Eventually(t, func() bool {
		conn, err := kafka.Dial("tcp", k.Brokers[0])
		if err != nil {
			return false
		}
		defer conn.Close()
		parts, err := conn.ReadPartitions(name)
		return err == nil && len(parts) > 0
	}, 10*time.Second, 200*time.Millisecond, "topic %s not ready", name)

	return name, name + "-group"
}

func (k *Kafka) createTopic(name string) error {
	conn, err := kafka.Dial("tcp", k.Brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.Dial("tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: name, NumPartitions: 1, ReplicationFactor: 1})
	if errors.Is(err, kafka.TopicAlreadyExists) {
		return nil
	}
	return err
}

// Write — синхронная запись значений в топик по порядку.
func (k *Kafka) Write(t testing.TB, topic string, values ...[]byte) {
	t.Helper()

	w := &kafka.Writer{
		Addr:         kafka.TCP(k.Brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msgs := make([]kafka.Message, 0, len(values))
	for _, v := range values {
		msgs = append(msgs, kafka.Message{Value: v})
	}
	require.NoError(t, w.WriteMessages(ctx, msgs...))
}

// ReadOne — первое сообщение топика (без группы, с начала партиции).
func (k *Kafka) ReadOne(t testing.TB, topic string, within time.Duration) kafka.Message {
	t.Helper()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   k.Brokers,
		Topic:     topic,
		Partition: 0,
		MaxWait:   200 * time.Millisecond,
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), within)
	defer cancel()

	msg, err := r.ReadMessage(ctx)
	require.NoError(t, err, "read from %s", topic)
	return msg
}

// topicName — допустимое имя топика: [a-zA-Z0-9._-], не длиннее 249 символов.
func topicName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
	if len(s) > 249 {
		s = s[len(s)-249:]
	}
	return s
}
