//go:build integration

package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	pgstorage "github.com/Gunvolt24/wb_cart/internal/storage/postgres"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
)

// startTimeout — подъём контейнера с учётом скачивания образа.
const startTimeout = 2 * time.Minute

// Logger — логгер сервиса, пишущий в вывод теста.
// Только для синхронного кода: после завершения теста zaptest паникует.
func Logger(t testing.TB) *logger.ZapLogger {
	return logger.NewFromZap(zaptest.NewLogger(t))
}

// lifecycle — короткие строки о старте и остановке контейнера в выводе теста.
func lifecycle(t testing.TB, name string) tc.ContainerLifecycleHooks {
	stage := func(what string) []tc.ContainerHook {
		return []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			t.Logf("%s %s id=%.12s", name, what, c.GetContainerID())
			return nil
		}}
	}
	return tc.ContainerLifecycleHooks{
		PostReadies:    stage("ready"),
		PostTerminates: stage("terminated"),
	}
}

func startCtx(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)
	return ctx
}

// Postgres — пустая база carts; схему создаёт Migrate.
type Postgres struct {
	DSN  string
	Pool *pgxpool.Pool
}

func StartPostgres(t testing.TB) *Postgres {
	t.Helper()
	ctx := startCtx(t)

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycle(t, "postgres")),
		tcpostgres.WithDatabase("carts"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	tc.CleanupContainer(t, ctr)
	require.NoError(t, err, "run postgres")

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgstorage.NewPool(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &Postgres{DSN: dsn, Pool: pool}
}

// Migrate — встроенные миграции сервиса поверх пула контейнера.
func (p *Postgres) Migrate(t testing.TB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, pgstorage.Migrate(ctx, p.Pool, Logger(t)))
}

// Redis — адрес в виде host:port.
type Redis struct {
	Addr string
}

func StartRedis(t testing.TB) *Redis {
	t.Helper()
	ctx := startCtx(t)

	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycle(t, "redis")},
			WaitingFor:     wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	tc.CleanupContainer(t, ctr)
	require.NoError(t, err, "run redis")

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return &Redis{Addr: fmt.Sprintf("%s:%s", host, port.Port())}
}
