package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_cart/config"
	cachemem "github.com/Gunvolt24/wb_cart/internal/cache/memory"
	"github.com/Gunvolt24/wb_cart/internal/catalog/cached"
	"github.com/Gunvolt24/wb_cart/internal/catalog/httpapi"
	"github.com/Gunvolt24/wb_cart/internal/kafka"
	"github.com/Gunvolt24/wb_cart/internal/notify"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage/dynamo"
	"github.com/Gunvolt24/wb_cart/internal/storage/memory"
	"github.com/Gunvolt24/wb_cart/internal/storage/postgres"
	redisstore "github.com/Gunvolt24/wb_cart/internal/storage/redis"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер событий каталога; nil — выключен
	Cart            *usecase.CartService  // корзина
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// openStorage — слот корзины выбранного бэкенда и функция его закрытия.
func openStorage(ctx context.Context, cfg config.Storage, log ports.Logger) (ports.CartStorage, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.StorageMemory, "":
		log.Warnf(ctx, "cart storage is in-memory, snapshot is lost on restart")
		return memory.NewStorage(), noop, nil

	case config.StorageRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "redis close error: %v", err)
			}
		}
		return redisstore.NewStorage(client, cfg.Key, cfg.Redis.TTL), closeFn, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, noop, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, noop, err
			}
		}
		return postgres.NewStorage(pool, cfg.Key), pool.Close, nil

	case config.StorageDynamo:
		client, err := dynamo.NewClient(ctx, cfg.Dynamo.Region, cfg.Dynamo.Endpoint)
		if err != nil {
			return nil, noop, err
		}
		return dynamo.NewStorage(client, cfg.Dynamo.Table, cfg.Key), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// buildNotifier — лог + лента для UI + (опционально) топик Kafka.
func buildNotifier(cfg config.Notify, log ports.Logger) (ports.Notifier, *notify.Feed, func()) {
	feed := notify.NewFeed(cfg.FeedSize)
	if !cfg.KafkaEnabled {
		return notify.NewFanout(notify.NewLogNotifier(log), feed), feed, func() {}
	}

	kn := notify.NewAsyncKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	closeFn := func() {
		if err := kn.Close(); err != nil {
			log.Warnf(context.Background(), "kafka notifier close error: %v", err)
		}
	}
	return notify.NewFanout(notify.NewLogNotifier(log), feed, kn), feed, closeFn
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, cfg.Logger.Level)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Слот корзины.
	store, closeStore, err := openStorage(ctx, cfg.Storage, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logg.Infof(ctx, "cart storage backend=%s key=%s", cfg.Storage.Backend, cfg.Storage.Key)

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Каталог: HTTP-клиент + кэш карточек.
	productCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	catalog := cached.New(httpapi.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logg), productCache, logg)

	notifier, feed, closeNotifier := buildNotifier(cfg.Notify, logg)

	// Корзина: восстановление снимка до приёма запросов.
	cart := usecase.NewCartService(catalog, store, notifier, validate.NewCartValidator(), logg)
	cart.Init(ctx)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(cart, feed, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Cart:            cart,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер событий каталога: сбрасывает устаревшие карточки из кэша.
	if cfg.Events.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Events.Brokers,
			GroupID:        cfg.Events.GroupID,
			Topic:          cfg.Events.Topic,
			StartOffset:    cfg.Events.StartOffset,
			MaxWait:        cfg.Events.MaxWait,
			ProcessTimeout: cfg.Events.ProcessTimeout,
			RetryInitial:   cfg.Events.RetryInitial,
			RetryMax:       cfg.Events.RetryMax,
		}
		app.KafkaConsumer = kafka.NewConsumer(&kafkaCfg, usecase.NewProductEvents(catalog, logg), logg)
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if app.KafkaConsumer != nil {
			if err := app.KafkaConsumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		closeNotifier()
		closeStore()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
