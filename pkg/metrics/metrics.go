package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Операции корзины: op = add|remove|update, result = ok|noop|out_of_stock|lookup_error|not_found|storage_error.
var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart mutations by operation and result",
		},
		[]string{"op", "result"},
	)
	CartLineItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_line_items",
			Help: "Number of distinct products currently in the cart",
		},
	)
)

// Запросы к каталогу: op = stock|product, result = ok|not_found|error.
var (
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Requests to the remote catalog",
		},
		[]string{"op", "result"},
	)
	CatalogLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Latency of requests to the remote catalog",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|invalidated
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_cache_size",
			Help: "Number of products currently in cache",
		},
	)
)

var Notifications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "User notifications by sink",
	},
	[]string{"sink"}, // log|feed|kafka
)

var NotificationFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Notifications a sink failed to deliver",
	},
	[]string{"sink"},
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartOps, CartLineItems,
			CatalogRequests, CatalogLatency,
			CacheOps, CacheSize,
			Notifications, NotificationFailures,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
		)
	})
}
