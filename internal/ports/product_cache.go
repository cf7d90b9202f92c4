package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ProductCache — кэш карточек товаров.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type ProductCache interface {
	// Get — (product, true) при попадании, (zero, false) при промахе/истечении.
	Get(ctx context.Context, id domain.ProductID) (domain.Product, bool)
	Set(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id domain.ProductID) error
}
