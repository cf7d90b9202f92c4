package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page — окно выборки из списка.
type Page struct {
	Limit  int
	Offset int
}

// PageFromQuery — limit/offset из query-строки.
// Нечисловые значения игнорируются, limit прижимается к [1, maxLimit],
// отрицательный offset считается нулём.
func PageFromQuery(c *gin.Context, defaultLimit, maxLimit int) Page {
	p := Page{Limit: defaultLimit}
	if v, ok := queryInt(c, "limit"); ok {
		p.Limit = v
	}
	if v, ok := queryInt(c, "offset"); ok && v > 0 {
		p.Offset = v
	}
	p.Limit = max(1, min(p.Limit, maxLimit))
	return p
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

type idURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// BindID — path-параметр :id; ошибка, если он не целое число больше нуля.
func BindID(c *gin.Context) (int64, error) {
	var u idURI
	if err := c.ShouldBindUri(&u); err != nil {
		return 0, err
	}
	return u.ID, nil
}
