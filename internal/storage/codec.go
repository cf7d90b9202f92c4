// Package storage — общий формат снимка корзины для всех бэкендов (JSON-массив позиций).
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

var (
	// ErrPersistence — бэкенд хранилища недоступен или отказал в записи/чтении.
	ErrPersistence = errors.New("cart persistence failed")
	// ErrPersistenceDecode — в слоте лежат данные, не являющиеся корректной корзиной.
	ErrPersistenceDecode = errors.New("persisted cart is malformed")
)

// DefaultKey — имя слота по умолчанию.
const DefaultKey = "@RocketShoes:cart"

// Encode — сериализация корзины; nil кодируется как пустой массив.
func Encode(cart domain.Cart) ([]byte, error) {
	if cart == nil {
		cart = domain.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("%w: encode cart: %w", ErrPersistence, err)
	}
	return payload, nil
}

// Decode — строгий разбор и проверка инвариантов корзины.
func Decode(ctx context.Context, raw []byte) (domain.Cart, error) {
	cart, err := validate.CartFromJSON(ctx, validate.NewCartValidator(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceDecode, err)
	}
	return cart, nil
}

// Wrap — оборачивает ошибку бэкенда в ErrPersistence с указанием операции.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
