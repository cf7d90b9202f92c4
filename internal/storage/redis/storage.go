// Package redis — слот корзины в Redis: JSON-снимок под одним ключом.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

var _ ports.CartStorage = (*Storage)(nil)

// kv — подмножество redis.Cmdable, которым пользуется хранилище.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Storage — реализация ports.CartStorage поверх go-redis.
type Storage struct {
	client kv
	key    string
	ttl    time.Duration
}

// NewStorage — ttl == 0 означает хранение без срока.
func NewStorage(client kv, key string, ttl time.Duration) *Storage {
	if key == "" {
		key = storage.DefaultKey
	}
	return &Storage{client: client, key: key, ttl: ttl}
}

func (s *Storage) Load(ctx context.Context) (domain.Cart, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storage.Wrap("redis get", err)
	}
	cart, err := storage.Decode(ctx, raw)
	if err != nil {
		return nil, true, err
	}
	return cart, true, nil
}

func (s *Storage) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := storage.Encode(cart)
	if err != nil {
		return err
	}
	return storage.Wrap("redis set", s.client.Set(ctx, s.key, raw, s.ttl).Err())
}

// NewClient — принимает "host:port" или URL "redis://..."; делает Ping для fail-fast.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
