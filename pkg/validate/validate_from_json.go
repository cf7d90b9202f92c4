package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// CartFromJSON — разбор снимка корзины (JSON-массив позиций) и его валидация.
// Лишние поля позиций не ошибка: они остаются в Product.Extra.
func CartFromJSON(ctx context.Context, validator ports.CartValidator, raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := decodeSingle(raw, &cart, false); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, cart); err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.Cart{}
	}
	return cart, nil
}

// ProductEventFromJSON — строгий разбор события каталога. Ошибки разбора
// тоже оборачивают ErrInvalidEvent: такое сообщение повторно обрабатывать бессмысленно.
func ProductEventFromJSON(raw []byte) (domain.ProductEvent, error) {
	var ev domain.ProductEvent
	if err := decodeSingle(raw, &ev, true); err != nil {
		return domain.ProductEvent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if err := ValidateProductEvent(ev); err != nil {
		return domain.ProductEvent{}, err
	}
	return ev, nil
}

// decodeSingle — ровно одно JSON-значение; strict запрещает неизвестные поля.
func decodeSingle(raw []byte, v any, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("invalid json: trailing data")
	}
	return nil
}
