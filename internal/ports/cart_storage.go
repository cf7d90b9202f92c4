package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartStorage — один именованный слот, переживающий перезапуск процесса.
// Save перезаписывает слот целиком (last-writer-wins).
type CartStorage interface {
	// Load — (cart, true, nil) если слот заполнен; (nil, false, nil) если пуст.
	Load(ctx context.Context) (domain.Cart, bool, error)
	Save(ctx context.Context, cart domain.Cart) error
}
