package loggingmw

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_api/internal/logging"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")

	e := echo.New()
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: func() string { return "rid-1" }}))
	e.Use(RequestLogger(base))
	e.GET("/order/:orderId", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		if c.Param("orderId") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order/A1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	got := lines(t, &buf)
	require.Len(t, got, 4)

	assert.Equal(t, "inside", got[0]["msg"])
	assert.Equal(t, "rid-1", got[0]["request_id"])
	assert.Equal(t, "/order/:orderId", got[0]["path"])

	assert.Equal(t, "request_completed", got[1]["msg"])
	assert.Equal(t, "INFO", got[1]["level"])
	assert.Equal(t, float64(200), got[1]["status"])

	assert.Equal(t, "WARN", got[3]["level"])
	assert.Equal(t, float64(404), got[3]["status"])
	assert.Equal(t, "/order/missing", got[3]["url"])
}
