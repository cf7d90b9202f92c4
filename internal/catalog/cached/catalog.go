// Package cached — декоратор каталога: карточки товаров через кэш, остатки всегда из каталога.
package cached

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

var (
	_ ports.Catalog            = (*Catalog)(nil)
	_ ports.ProductInvalidator = (*Catalog)(nil)
)

// Catalog — ports.Catalog поверх удалённого каталога и ProductCache.
type Catalog struct {
	remote ports.Catalog
	cache  ports.ProductCache
	log    ports.Logger
}

func New(remote ports.Catalog, cache ports.ProductCache, log ports.Logger) *Catalog {
	return &Catalog{remote: remote, cache: cache, log: log}
}

// GetStock — остаток не кэшируется: проверка количества должна видеть свежие данные.
func (c *Catalog) GetStock(ctx context.Context, id domain.ProductID) (domain.Stock, error) {
	return c.remote.GetStock(ctx, id)
}

func (c *Catalog) GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	if product, ok := c.cache.Get(ctx, id); ok {
		c.log.Debugf(ctx, "product cache hit id=%d", id)
		return product, nil
	}

	product, err := c.remote.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := c.cache.Set(ctx, product); err != nil {
		c.log.Warnf(ctx, "product cache set failed id=%d err=%v", id, err)
	}
	return product, nil
}

// Invalidate — сброс карточки по событию каталога.
func (c *Catalog) Invalidate(ctx context.Context, id domain.ProductID) error {
	return c.cache.Delete(ctx, id)
}
