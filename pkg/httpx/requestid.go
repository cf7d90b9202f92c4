package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
)

// HeaderRequestID — заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID — берёт X-Request-ID клиента или выдаёт новый UUID.
// Идентификатор кладётся в контекст запроса (его подхватывает логгер) и в ответ.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !acceptableRequestID(id) {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// acceptableRequestID — непустой, не длиннее maxRequestIDLen, только видимые ASCII.
func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
