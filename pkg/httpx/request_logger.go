package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// RequestLogger — строка лога на каждый запрос, уровень зависит от статуса ответа.
// Маршруты из skip (шаблоны gin, например "/metrics") не логируются.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		switch {
		case status >= 500:
			logf = log.Errorf
		case status >= 400:
			logf = log.Warnf
		}

		ctx := c.Request.Context()
		logf(ctx, "http request method=%s route=%s status=%d latency=%s bytes=%d client_ip=%s",
			c.Request.Method, route, status, time.Since(start), c.Writer.Size(), c.ClientIP())
		if len(c.Errors) > 0 {
			log.Debugf(ctx, "http request errors=%q", c.Errors.String())
		}
	}
}
