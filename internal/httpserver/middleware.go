package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/order_api/internal/metrics"
	loggingmw "github.com/Skotchmaster/order_api/internal/middleware/logging"
)

// UseMiddleware installs the global chain. Recover sits inside the metrics
// and request logger so a panic is logged and counted as a 500.
func UseMiddleware(e *echo.Echo, logger *slog.Logger, serviceName string) {
	e.Use(metrics.Middleware(serviceName))
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
}
