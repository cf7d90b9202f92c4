// Package httpapi — HTTP-клиент удалённого каталога: GET /stock/{id}, GET /products/{id}.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// Проверка, что Client удовлетворяет интерфейсу Catalog.
var _ ports.Catalog = (*Client)(nil)

// maxBodyBytes — ограничение на размер ответа каталога.
const maxBodyBytes = 1 << 20

// Client — клиент каталога. Запросы не ретраятся: одна ошибка прерывает операцию корзины.
type Client struct {
	baseURL string
	http    *http.Client
	log     ports.Logger
}

// NewClient — baseURL без завершающего "/", timeout — на весь запрос.
func NewClient(baseURL string, timeout time.Duration, log ports.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, log)
}

// NewClientWithHTTP — вариант с готовым *http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, log ports.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// GetStock — текущий остаток товара. Отрицательный остаток считается некорректным ответом.
func (c *Client) GetStock(ctx context.Context, id domain.ProductID) (domain.Stock, error) {
	var stock domain.Stock
	if err := c.getJSON(ctx, "stock", fmt.Sprintf("/stock/%d", id), &stock); err != nil {
		return domain.Stock{}, err
	}
	if stock.Amount < 0 {
		return domain.Stock{}, fmt.Errorf("%w: stock id=%d: negative amount %d", ports.ErrLookup, id, stock.Amount)
	}
	stock.ID = id
	return stock, nil
}

// GetProduct — карточка товара; id в ответе не обязателен.
func (c *Client) GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "product", fmt.Sprintf("/products/%d", id), &product); err != nil {
		return domain.Product{}, err
	}
	product.ID = id
	return product, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, v any) (err error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.CatalogRequests.WithLabelValues(op, resultLabel(err)).Inc()
		if err != nil {
			c.log.Warnf(ctx, "catalog request failed op=%s path=%s err=%v", op, path, err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ports.ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ports.ErrLookup, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w: %s", ports.ErrLookup, ports.ErrProductNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s: unexpected status %d", ports.ErrLookup, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: decode: %w", ports.ErrLookup, path, err)
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ports.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}
