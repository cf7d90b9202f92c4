package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
)

func TestRequestLogger_LevelByStatusAndSkip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(httpx.RequestLogger(logger.NewFromZap(zap.New(core)), "/ping"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/cart", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ping", "/cart", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Contains(t, entries[0].Message, "route=/cart status=200")

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Contains(t, entries[1].Message, "route=/missing status=404")

	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Contains(t, entries[2].Message, "route=/boom status=500")
}
