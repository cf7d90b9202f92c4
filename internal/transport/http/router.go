package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

// Handler — HTTP-обработчики корзины.
type Handler struct {
	cart    ports.CartReadWriter
	feed    ports.NotificationFeed
	log     ports.Logger
	timeout time.Duration // таймаут на запрос; 0 — без ограничения
}

// amountRequest — тело PUT /cart/items/:id.
type amountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

func NewHandler(cart ports.CartReadWriter, feed ports.NotificationFeed, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{cart: cart, feed: feed, log: log, timeout: timeout}
}

// NewRouter — gin-роутер. staticDir пустой — без статики; otelServiceName пустой — без otelgin.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(gin.Recovery())
	r.Use(httpx.RequestID())
	r.Use(httpx.RequestLogger(h.log, "/ping", "/metrics"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/cart", h.getCart)
	r.POST("/cart/items/:id", h.addProduct)
	r.DELETE("/cart/items/:id", h.removeProduct)
	r.PUT("/cart/items/:id", h.updateAmount)

	r.GET("/notifications", h.listNotifications)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart.Summary(c.Request.Context()))
}

func (h *Handler) productID(c *gin.Context) (domain.ProductID, bool) {
	id, err := httpx.BindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return domain.ProductID(id), true
}

func (h *Handler) addProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	h.cart.AddProduct(ctx, id)
	c.JSON(http.StatusOK, h.cart.Summary(ctx))
}

func (h *Handler) removeProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	h.cart.RemoveProduct(ctx, id)
	c.JSON(http.StatusOK, h.cart.Summary(ctx))
}

func (h *Handler) updateAmount(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debugf(c.Request.Context(), "bad update body id=%d err=%v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	h.cart.UpdateProductAmount(ctx, id, *req.Amount)
	c.JSON(http.StatusOK, h.cart.Summary(ctx))
}

func (h *Handler) listNotifications(c *gin.Context) {
	page := httpx.PageFromQuery(c, defaultFeedLimit, maxFeedLimit)
	c.JSON(http.StatusOK, h.feed.List(c.Request.Context(), page.Limit, page.Offset))
}
