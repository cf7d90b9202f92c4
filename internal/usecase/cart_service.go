package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
)

// Тексты уведомлений пользователю.
const (
	MsgOutOfStock  = "Requested quantity is out of stock"
	MsgAddError    = "Error adding product"
	MsgRemoveError = "Error removing product"
	MsgUpdateError = "Error updating product amount"
)

// ErrOutOfStock — запрошенное количество больше остатка.
var ErrOutOfStock = errors.New("requested quantity is out of stock")

// Проверка, что CartService удовлетворяет интерфейсу CartReadWriter.
var _ ports.CartReadWriter = (*CartService)(nil)

const (
	opAdd    = "add"
	opRemove = "remove"
	opUpdate = "update"
)

// CartService — корзина покупателя: состояние в памяти, слот хранилища и проверка остатков.
// Мутации сериализуются мьютексом на всё время операции, включая запросы в каталог;
// чтение берёт последний зафиксированный снимок и мьютекс не ждёт.
// Ни одна операция не возвращает ошибку: отказ превращается в уведомление, корзина не меняется.
type CartService struct {
	catalog   ports.Catalog       // остатки и карточки товаров
	storage   ports.CartStorage   // слот со снимком корзины
	notifier  ports.Notifier      // уведомления пользователю
	validator ports.CartValidator // проверка снимка при загрузке
	log       ports.Logger
	tracer    trace.Tracer

	mu   sync.Mutex                  // очередь мутаций
	snap atomic.Pointer[domain.Cart] // пишется только под mu
}

// NewCartService — DI-конструктор. Корзина пуста до вызова Init.
func NewCartService(
	catalog ports.Catalog,
	store ports.CartStorage,
	notifier ports.Notifier,
	validator ports.CartValidator,
	log ports.Logger,
) *CartService {
	s := &CartService{
		catalog:   catalog,
		storage:   store,
		notifier:  notifier,
		validator: validator,
		log:       log,
		tracer:    telemetry.Tracer(),
	}
	s.publish(domain.Cart{})
	return s
}

// Init — восстановить корзину из хранилища. Пустой слот, битые данные
// или недоступное хранилище дают пустую корзину (с предупреждением в логе).
func (s *CartService) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publish(s.restore(ctx))
}

func (s *CartService) restore(ctx context.Context) domain.Cart {
	cart, ok, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrPersistenceDecode):
		s.log.Warnf(ctx, "persisted cart is malformed, starting empty err=%v", err)
		return domain.Cart{}
	case err != nil:
		s.log.Warnf(ctx, "persisted cart load failed, starting empty err=%v", err)
		return domain.Cart{}
	case !ok:
		s.log.Infof(ctx, "no persisted cart, starting empty")
		return domain.Cart{}
	}

	if err := s.validator.Validate(ctx, cart); err != nil {
		s.log.Warnf(ctx, "persisted cart failed validation, starting empty err=%v", err)
		return domain.Cart{}
	}
	s.log.Infof(ctx, "cart restored products=%d count=%d", len(cart), cart.Count())
	return cart.Clone()
}

// Cart — копия текущего снимка.
func (s *CartService) Cart(_ context.Context) domain.Cart {
	return s.current().Clone()
}

// Summary — позиции, число товаров, число единиц и сумма.
func (s *CartService) Summary(_ context.Context) domain.Summary {
	return s.current().Summarize()
}

// current — последний зафиксированный снимок. Срез не меняется после публикации.
func (s *CartService) current() domain.Cart {
	return *s.snap.Load()
}

func (s *CartService) publish(cart domain.Cart) {
	s.snap.Store(&cart)
	metrics.CartLineItems.Set(float64(len(cart)))
}

// lock — встать в очередь мутаций. Запрос, отменённый за время ожидания,
// снимается без обращения к каталогу и без уведомления: клиент уже ушёл.
func (s *CartService) lock(ctx context.Context, op string) bool {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		metrics.CartOps.WithLabelValues(op, "canceled").Inc()
		s.log.Warnf(ctx, "cart %s dropped while queued err=%v", op, err)
		return false
	}
	return true
}

// AddProduct — добавить одну единицу товара.
// Для уже лежащего в корзине товара количество меняется через тот же путь, что и UpdateProductAmount
// (с повторной проверкой остатка).
func (s *CartService) AddProduct(ctx context.Context, id domain.ProductID) {
	ctx, span := s.startSpan(ctx, "CartService.AddProduct", id)
	defer span.End()

	if !s.lock(ctx, opAdd) {
		return
	}
	defer s.mu.Unlock()

	stock, err := s.catalog.GetStock(ctx, id)
	if err != nil {
		s.fail(ctx, span, opAdd, lookupResult(err), MsgAddError, fmt.Errorf("get stock: %w", err))
		return
	}

	if existing, ok := s.current().Find(id); ok {
		newAmount := existing.Amount + 1
		if newAmount > stock.Amount {
			s.fail(ctx, span, opAdd, "out_of_stock", MsgOutOfStock, outOfStock(id, newAmount, stock.Amount))
			return
		}
		s.setAmount(ctx, span, opAdd, id, newAmount)
		return
	}

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		s.fail(ctx, span, opAdd, lookupResult(err), MsgAddError, fmt.Errorf("get product: %w", err))
		return
	}
	if stock.Amount <= 0 {
		s.fail(ctx, span, opAdd, "out_of_stock", MsgOutOfStock, outOfStock(id, 1, stock.Amount))
		return
	}
	product.ID = id

	if err := s.commit(ctx, s.current().Append(domain.LineItem{Product: product, Amount: 1})); err != nil {
		s.fail(ctx, span, opAdd, "storage_error", MsgAddError, err)
		return
	}
	s.succeed(ctx, opAdd, "product added id=%d amount=1", id)
}

// RemoveProduct — убрать позицию целиком; отсутствующий id — уведомление об ошибке.
func (s *CartService) RemoveProduct(ctx context.Context, id domain.ProductID) {
	ctx, span := s.startSpan(ctx, "CartService.RemoveProduct", id)
	defer span.End()

	if !s.lock(ctx, opRemove) {
		return
	}
	defer s.mu.Unlock()

	if _, ok := s.current().Find(id); !ok {
		s.fail(ctx, span, opRemove, "not_found", MsgRemoveError, fmt.Errorf("product id=%d is not in cart", id))
		return
	}

	if err := s.commit(ctx, s.current().Without(id)); err != nil {
		s.fail(ctx, span, opRemove, "storage_error", MsgRemoveError, err)
		return
	}
	s.succeed(ctx, opRemove, "product removed id=%d", id)
}

// UpdateProductAmount — установить количество. amount <= 0 молча игнорируется.
func (s *CartService) UpdateProductAmount(ctx context.Context, id domain.ProductID, amount int) {
	ctx, span := s.startSpan(ctx, "CartService.UpdateProductAmount", id)
	defer span.End()
	span.SetAttributes(attribute.Int("cart.amount", amount))

	if amount <= 0 {
		metrics.CartOps.WithLabelValues(opUpdate, "noop").Inc()
		s.log.Debugf(ctx, "update ignored id=%d amount=%d", id, amount)
		return
	}

	if !s.lock(ctx, opUpdate) {
		return
	}
	defer s.mu.Unlock()

	s.setAmount(ctx, span, opUpdate, id, amount)
}

// setAmount — общий путь изменения количества; вызывается под s.mu.
// Ошибки сообщаются текстом MsgUpdateError независимо от вызывающей операции.
func (s *CartService) setAmount(ctx context.Context, span trace.Span, op string, id domain.ProductID, amount int) {
	stock, err := s.catalog.GetStock(ctx, id)
	if err != nil {
		s.fail(ctx, span, op, lookupResult(err), MsgUpdateError, fmt.Errorf("get stock: %w", err))
		return
	}
	if amount > stock.Amount {
		s.fail(ctx, span, op, "out_of_stock", MsgOutOfStock, outOfStock(id, amount, stock.Amount))
		return
	}

	// отсутствующий id — не ошибка: снимок записывается как есть
	if err := s.commit(ctx, s.current().WithAmount(id, amount)); err != nil {
		s.fail(ctx, span, op, "storage_error", MsgUpdateError, err)
		return
	}
	s.succeed(ctx, op, "product amount set id=%d amount=%d", id, amount)
}

// commit — сначала запись в хранилище, затем замена снимка в памяти.
// При ошибке записи состояние в памяти не меняется.
func (s *CartService) commit(ctx context.Context, next domain.Cart) error {
	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.publish(next)
	return nil
}

func (s *CartService) succeed(ctx context.Context, op, format string, args ...any) {
	metrics.CartOps.WithLabelValues(op, "ok").Inc()
	s.log.Infof(ctx, format, args...)
}

// fail — метрика, лог, спан и уведомление пользователю.
func (s *CartService) fail(ctx context.Context, span trace.Span, op, result, message string, err error) {
	metrics.CartOps.WithLabelValues(op, result).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, result)

	switch result {
	case "out_of_stock", "not_found":
		s.log.Warnf(ctx, "cart %s rejected result=%s err=%v", op, result, err)
	default:
		s.log.Errorf(ctx, "cart %s failed result=%s err=%v", op, result, err)
	}
	s.notifier.Error(ctx, message)
}

func (s *CartService) startSpan(ctx context.Context, name string, id domain.ProductID) (context.Context, trace.Span) {
	ctx = ctxmeta.WithProductID(ctx, int64(id))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("product.id", int64(id))))
}

func outOfStock(id domain.ProductID, requested, available int) error {
	return fmt.Errorf("%w: id=%d requested=%d stock=%d", ErrOutOfStock, id, requested, available)
}

func lookupResult(err error) string {
	if errors.Is(err, ports.ErrProductNotFound) {
		return "not_found"
	}
	return "lookup_error"
}
