package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// ProductEvents — обработчик событий каталога: любое изменение карточки сбрасывает её из кэша.
type ProductEvents struct {
	invalidator ports.ProductInvalidator
	log         ports.Logger
}

func NewProductEvents(invalidator ports.ProductInvalidator, log ports.Logger) *ProductEvents {
	return &ProductEvents{invalidator: invalidator, log: log}
}

// HandleProductEvent — raw JSON события. Некорректное событие возвращает ошибку,
// оборачивающую validate.ErrInvalidEvent (потребитель такие сообщения коммитит и пропускает).
func (h *ProductEvents) HandleProductEvent(ctx context.Context, raw []byte) error {
	ev, err := validate.ProductEventFromJSON(raw)
	if err != nil {
		h.log.Warnf(ctx, "invalid product event err=%v", err)
		return err
	}

	if err := h.invalidator.Invalidate(ctx, ev.ID); err != nil {
		h.log.Errorf(ctx, "invalidate product failed id=%d type=%s err=%v", ev.ID, ev.Type, err)
		return fmt.Errorf("invalidate product %d: %w", ev.ID, err)
	}
	h.log.Infof(ctx, "product invalidated id=%d type=%s", ev.ID, ev.Type)
	return nil
}
