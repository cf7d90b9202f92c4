package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartReadWriter — операции корзины, доступные транспортному слою.
// Мутации ничего не возвращают: ошибки уходят пользователю через Notifier.
type CartReadWriter interface {
	Cart(ctx context.Context) domain.Cart
	Summary(ctx context.Context) domain.Summary
	AddProduct(ctx context.Context, id domain.ProductID)
	RemoveProduct(ctx context.Context, id domain.ProductID)
	UpdateProductAmount(ctx context.Context, id domain.ProductID, amount int)
}
