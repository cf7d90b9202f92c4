package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу ProductCache.
var _ ports.ProductCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        domain.ProductID
	product   domain.Product
	expiresAt time.Time
}

// LRUCacheTTL — LRU-кэш карточек товаров с абсолютным TTL.
// TTL не продлевается при чтении: карточка из каталога должна обновляться.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[domain.ProductID]*list.Element

	mu  sync.Mutex
	now func() time.Time
}

// NewLRUCacheTTL — capacity <= 0 приводится к 1; ttl <= 0 — без истечения.
func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[domain.ProductID]*list.Element),
		now:      time.Now,
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id domain.ProductID) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return domain.Product{}, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, c.now()) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		return domain.Product{}, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.product, true
}

func (c *LRUCacheTTL) Set(_ context.Context, product domain.Product) error {
	if product.ID <= 0 {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[product.ID]; ok {
		ent := elem.Value.(*entry)
		ent.product = product
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	c.index[product.ID] = c.ll.PushFront(&entry{
		id:        product.ID,
		product:   product,
		expiresAt: c.expiryFrom(now),
	})
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Delete — сброс карточки (событие каталога); отсутствие id не ошибка.
func (c *LRUCacheTTL) Delete(_ context.Context, id domain.ProductID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[id]; ok {
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("invalidated").Inc()
	}
	return nil
}

// Len — текущее число карточек.
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса, обновляет gauge.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.id)
	c.ll.Remove(elem)
	metrics.CacheSize.Set(float64(len(c.index)))
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет просроченные элементы с хвоста до первого актуального.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
