// Package memory — слот корзины в памяти процесса (dev, тесты).
package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

var _ ports.CartStorage = (*Storage)(nil)

// Storage — хранит сериализованный снимок, как настоящий key-value слот:
// наружу не утекают ссылки на внутренние данные.
type Storage struct {
	mu      sync.RWMutex
	payload []byte
	present bool
}

// NewStorage — пустой слот.
func NewStorage() *Storage { return &Storage{} }

// NewStorageWithPayload — слот с заранее записанными (в т.ч. битыми) данными.
func NewStorageWithPayload(raw []byte) *Storage {
	return &Storage{payload: append([]byte(nil), raw...), present: true}
}

func (s *Storage) Load(ctx context.Context) (domain.Cart, bool, error) {
	s.mu.RLock()
	raw, ok := s.payload, s.present
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	cart, err := storage.Decode(ctx, raw)
	if err != nil {
		return nil, true, err
	}
	return cart, true, nil
}

func (s *Storage) Save(_ context.Context, cart domain.Cart) error {
	raw, err := storage.Encode(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload, s.present = raw, true
	s.mu.Unlock()
	return nil
}

// Raw — текущее содержимое слота (для отладки и тестов).
func (s *Storage) Raw() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.payload...), s.present
}
