package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что CartValidator удовлетворяет интерфейсу CartValidator.
var _ ports.CartValidator = (*CartValidator)(nil)

var (
	// ErrInvalidCart — базовая (sentinel error) ошибка валидации снимка корзины.
	ErrInvalidCart = errors.New("cart validation failed")
	// ErrInvalidEvent — событие каталога не прошло проверку.
	ErrInvalidEvent = errors.New("product event validation failed")
)

// CartValidator — проверка инвариантов корзины: id > 0, amount >= 1, цена >= 0, id уникальны.
type CartValidator struct{}

// NewCartValidator — конструктор CartValidator.
func NewCartValidator() *CartValidator { return &CartValidator{} }

// Validate — возвращает ErrInvalidCart (с обёрнутой причиной) при первой найденной проблеме.
// Пустая корзина валидна.
func (v *CartValidator) Validate(_ context.Context, cart domain.Cart) error {
	seen := make(map[domain.ProductID]struct{}, len(cart))
	for i, item := range cart {
		if item.ID <= 0 {
			return fmt.Errorf("%w: items[%d].id должен быть положительным", ErrInvalidCart, i)
		}
		if item.Amount < 1 {
			return fmt.Errorf("%w: items[%d].amount должен быть >= 1 (id=%d)", ErrInvalidCart, i, item.ID)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: items[%d].price должен быть неотрицательным (id=%d)", ErrInvalidCart, i, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: повторяющийся id=%d", ErrInvalidCart, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// ValidateProductEvent — id > 0 и известный тип события.
func ValidateProductEvent(ev domain.ProductEvent) error {
	if ev.ID <= 0 {
		return fmt.Errorf("%w: id должен быть положительным", ErrInvalidEvent)
	}
	switch ev.Type {
	case domain.ProductUpdated, domain.ProductDeleted:
		return nil
	default:
		return fmt.Errorf("%w: неизвестный type=%q", ErrInvalidEvent, ev.Type)
	}
}
