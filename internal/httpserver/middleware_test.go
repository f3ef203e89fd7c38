package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/metrics"
)

func TestUseMiddleware_PanicIsRecoveredAndCounted(t *testing.T) {
	var logs bytes.Buffer

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(false)
	UseMiddleware(e, logging.NewWithWriter(&logs, "info"), "mw-panic")
	e.GET("/metrics", metrics.Handler())
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, logs.String(), `"status":500`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`http_requests_total{method="GET",route="/boom",service="mw-panic",status="500"} 1`)
}
