package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestReaderConfig_ManualCommitAndOffset(t *testing.T) {
	cases := map[string]int64{
		"first":     kafka.FirstOffset,
		" FiRsT \n": kafka.FirstOffset,
		"":          kafka.LastOffset,
		"last":      kafka.LastOffset,
		"earliest":  kafka.LastOffset,
		"\tLAST\t":  kafka.LastOffset,
	}

	for in, want := range cases {
		cfg := ConsumerConfig{
			Brokers:     []string{"k1:9092", "k2:9092"},
			Topic:       "catalog-products",
			GroupID:     "cart",
			StartOffset: in,
			MaxWait:     250 * time.Millisecond,
		}
		rc := cfg.ReaderConfig()

		require.Equal(t, want, rc.StartOffset, "start offset %q", in)
		require.Equal(t, cfg.Brokers, rc.Brokers)
		require.Equal(t, "catalog-products", rc.Topic)
		require.Equal(t, "cart", rc.GroupID)
		require.Equal(t, 250*time.Millisecond, rc.MaxWait)
		require.Zero(t, rc.CommitInterval)
	}
}

func TestConsumerConfig_WithDefaults(t *testing.T) {
	got := ConsumerConfig{}.withDefaults()
	require.Equal(t, defaultProcessTimeout, got.ProcessTimeout)
	require.Equal(t, defaultRetryInitial, got.RetryInitial)
	require.Equal(t, defaultRetryMax, got.RetryMax)

	got = ConsumerConfig{ProcessTimeout: time.Second, RetryInitial: time.Minute, RetryMax: time.Second}.withDefaults()
	require.Equal(t, time.Second, got.ProcessTimeout)
	require.Equal(t, time.Minute, got.RetryMax, "ceiling is raised to initial delay")
}
