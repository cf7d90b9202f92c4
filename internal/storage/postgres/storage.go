// Package postgres — слот корзины в таблице cart_snapshots (pgxpool).
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

// Проверка, что Storage удовлетворяет интерфейсу CartStorage.
var _ ports.CartStorage = (*Storage)(nil)

// querier — то, что нужно от *pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage — снимок корзины в JSONB под ключом слота.
type Storage struct {
	db  querier
	key string
}

// NewStorage — конструктор Storage; пустой key заменяется ключом по умолчанию.
func NewStorage(db querier, key string) *Storage {
	if key == "" {
		key = storage.DefaultKey
	}
	return &Storage{db: db, key: key}
}

// Load — (nil, false, nil), если строки со слотом нет.
func (s *Storage) Load(ctx context.Context) (domain.Cart, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT payload FROM cart_snapshots WHERE key = $1
	`, s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storage.Wrap("select snapshot", err)
	}

	cart, err := storage.Decode(ctx, raw)
	if err != nil {
		return nil, true, err
	}
	return cart, true, nil
}

// Save — идемпотентный upsert снимка целиком (last-writer-wins).
func (s *Storage) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := storage.Encode(cart)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO cart_snapshots (key, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, s.key, string(raw))
	return storage.Wrap("upsert snapshot", err)
}
