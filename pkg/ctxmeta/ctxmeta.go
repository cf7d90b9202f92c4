// Пакет ctxmeta — метаданные операции в context.Context.
// HTTP-слой и корзина кладут их в контекст, логгер превращает в поля.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type key int

const (
	requestIDKey key = iota
	productIDKey
)

// WithRequestID — пустой id контекст не меняет.
func WithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil || id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// WithProductID — товар, над которым идёт операция корзины.
func WithProductID(ctx context.Context, id int64) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, productIDKey, id)
}

func ProductID(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(productIDKey).(int64)
	return id, ok
}

// Fields — пары ключ/значение для структурного логгера:
// request_id, product_id, затем trace_id и span_id активного спана.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if id, ok := RequestID(ctx); ok {
		fields = append(fields, "request_id", id)
	}
	if id, ok := ProductID(ctx); ok {
		fields = append(fields, "product_id", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	return fields
}
