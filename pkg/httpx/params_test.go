package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_cart/pkg/httpx"
)

func testContext(rawQuery string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, http.NoBody)
	c.Params = params
	return c
}

func TestPageFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query    string
		def, max int
		want     httpx.Page
	}{
		{"", 20, 50, httpx.Page{Limit: 20}},
		{"", 100, 50, httpx.Page{Limit: 50}},
		{"", 0, 50, httpx.Page{Limit: 1}},
		{"limit=25&offset=10", 20, 50, httpx.Page{Limit: 25, Offset: 10}},
		{"offset=7", 20, 50, httpx.Page{Limit: 20, Offset: 7}},
		{"limit=0", 20, 50, httpx.Page{Limit: 1}},
		{"limit=-5", 20, 50, httpx.Page{Limit: 1}},
		{"limit=999", 20, 50, httpx.Page{Limit: 50}},
		{"limit=foo&offset=3", 20, 50, httpx.Page{Limit: 20, Offset: 3}},
		{"limit=10&offset=-3", 20, 50, httpx.Page{Limit: 10}},
		{"limit=&offset=", 20, 50, httpx.Page{Limit: 20}},
	}

	for _, tt := range tests {
		got := httpx.PageFromQuery(testContext(tt.query, nil), tt.def, tt.max)
		require.Equal(t, tt.want, got, "query=%q default=%d max=%d", tt.query, tt.def, tt.max)
	}
}

func TestBindID(t *testing.T) {
	t.Parallel()

	id, err := httpx.BindID(testContext("", gin.Params{{Key: "id", Value: "42"}}))
	require.NoError(t, err)
	require.EqualValues(t, 42, id)

	for _, bad := range []string{"0", "-3", "abc", "", "1.5", "99999999999999999999"} {
		_, err := httpx.BindID(testContext("", gin.Params{{Key: "id", Value: bad}}))
		require.Error(t, err, "id=%q", bad)
	}
}
