package ports

import (
	"context"
	"errors"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

var (
	// ErrLookup — каталог недоступен или вернул некорректный ответ.
	ErrLookup = errors.New("catalog lookup failed")
	// ErrProductNotFound — каталог не знает такого id (оборачивается вместе с ErrLookup).
	ErrProductNotFound = errors.New("product not found")
)

// Catalog — удалённый каталог товаров и складских остатков.
type Catalog interface {
	// GetStock — текущий остаток; всегда свежий запрос, не кэшируется.
	GetStock(ctx context.Context, id domain.ProductID) (domain.Stock, error)
	// GetProduct — карточка товара.
	GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error)
}

// ProductInvalidator — сброс закэшированной карточки товара.
type ProductInvalidator interface {
	Invalidate(ctx context.Context, id domain.ProductID) error
}
