package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestTracingConfig_Normalized(t *testing.T) {
	got := TracingConfig{SampleRatio: -0.5}.normalized()
	require.Equal(t, TracingConfig{ServiceName: "cart-app", Endpoint: "localhost:4318", SampleRatio: 0}, got)

	require.Equal(t, 1.0, TracingConfig{SampleRatio: 3}.normalized().SampleRatio)
	require.Equal(t, 0.25, TracingConfig{SampleRatio: 0.25}.normalized().SampleRatio)
}

func TestTracer_NoopByDefault(t *testing.T) {
	require.NotNil(t, Tracer())
}

func TestPropagator_RoundTrip(t *testing.T) {
	ctx, span := sdktrace.NewTracerProvider().Tracer("test").Start(context.Background(), "op")
	defer span.End()

	carrier := propagation.MapCarrier{}
	Propagator().Inject(ctx, carrier)
	require.Contains(t, carrier, "traceparent")

	extracted := Propagator().Extract(context.Background(), carrier)
	require.Equal(t, span.SpanContext().TraceID(), trace.SpanContextFromContext(extracted).TraceID())
}
