package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя библиотеки инструментирования для всех трейсеров сервиса.
const InstrumentationName = "github.com/Gunvolt24/wb_cart"

// Tracer — трейсер из глобального провайдера (no-op, пока SetupTracing не вызван).
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// TracingConfig — куда и сколько трейсов отправлять.
type TracingConfig struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // доля корневых трейсов, прижимается к [0, 1]
}

func (c TracingConfig) normalized() TracingConfig {
	if c.ServiceName == "" {
		c.ServiceName = "cart-app"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	c.SampleRatio = max(0, min(c.SampleRatio, 1))
	return c
}

// Propagator — W3C trace context и baggage; им же пользуется Kafka-нотификатор.
func Propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}

// SetupTracing — OTLP/HTTP экспорт, семплинг по родителю и глобальные пропагаторы.
// Возвращает shutdown провайдера.
func SetupTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	cfg = cfg.normalized()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))

	// решение о семплинге наследуется от UI, чтобы трейс UI → cart → catalog не рвался
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(Propagator())

	return provider.Shutdown, nil
}
