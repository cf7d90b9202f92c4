package ports

import "context"

// Logger — логгер сервиса в стиле printf.
// Из ctx реализация достаёт request_id и trace_id.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// MessageConsumer — фоновое чтение событий каталога.
// Run работает до отмены ctx, Close можно звать повторно.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
