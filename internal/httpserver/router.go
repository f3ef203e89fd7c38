package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/metrics"
	authmw "github.com/Skotchmaster/order_api/internal/middleware/auth"
)

const Version = "1.0.0"

type Deps struct {
	ServiceName  string
	Production   bool
	AuthHandler  *AuthHTTP
	OrderHandler *OrderHTTP
	Tokens       authmw.Verifier
	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler(d.Production)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "order API is running",
			"service": d.ServiceName,
			"version": Version,
			"endpoints": map[string]string{
				"register":    "POST /auth/register",
				"login":       "POST /auth/login",
				"me":          "GET /auth/me",
				"createOrder": "POST /order",
				"getOrder":    "GET /order/:orderId",
				"listOrders":  "GET /order/list",
				"updateOrder": "PUT /order/:orderId",
				"deleteOrder": "DELETE /order/:orderId",
			},
		})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Error("readiness_failed", "status", 503, "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", metrics.Handler())

	requireAuth := authmw.BearerAuth(d.Tokens)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.GET("/me", d.AuthHandler.Me, requireAuth)

	orders := e.Group("/order", requireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/list", d.OrderHandler.ListOrders)
	orders.GET("/:orderId", d.OrderHandler.GetOrder)
	orders.PUT("/:orderId", d.OrderHandler.UpdateOrder)
	orders.DELETE("/:orderId", d.OrderHandler.DeleteOrder)
}
