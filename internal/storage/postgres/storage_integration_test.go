//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pgstorage "github.com/Gunvolt24/wb_cart/internal/storage/postgres"
	"github.com/Gunvolt24/wb_cart/internal/testutil"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
)

// Сохранение, перезапись и чтение слота в настоящем Postgres
func TestStorage_SaveOverwriteLoad_TC(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgres(t)
	pg.Migrate(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := pg.Pool
	store := pgstorage.NewStorage(pool, "slot-"+testutil.UniqSuffix())

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	first := testutil.MakeCart(3)
	require.NoError(t, store.Save(ctx, first))

	second := first[:1]
	require.NoError(t, store.Save(ctx, second))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, second[0].ID, got[0].ID)
	require.True(t, second[0].Price.Equal(got[0].Price))

	// битый payload в слоте — ошибка декодирования, а не падение
	_, err = pool.Exec(ctx, `UPDATE cart_snapshots SET payload = '{"x":1}'::jsonb`)
	require.NoError(t, err)
	_, ok, err = store.Load(ctx)
	require.True(t, ok)
	require.Error(t, err)
}

// Встроенные миграции: повторный запуск ничего не ломает
func TestMigrate_Embedded_Idempotent_TC(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstorage.NewPool(ctx, pg.DSN, 2)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pgstorage.Migrate(ctx, pool, logger.NewNop()))
	require.NoError(t, pgstorage.Migrate(ctx, pool, logger.NewNop()))

	store := pgstorage.NewStorage(pool, "")
	require.NoError(t, store.Save(ctx, testutil.MakeCart(2)))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
}
