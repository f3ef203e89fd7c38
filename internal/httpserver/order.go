package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/service"
	"github.com/Skotchmaster/order_api/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return httpError(c, "create_order_error", "cannot create order", err)
	}

	l.Info("create_order_success", "order_id", order.NumeroPedido)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"data":    order,
		"message": "order created",
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderId")

	order, err := h.Svc.GetOrder(ctx, orderID)
	if err != nil {
		return httpError(c, "get_order_error", failMessage(err, orderID, "cannot get order"), err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    order,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return httpError(c, "list_orders_error", "cannot list orders", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    orders,
		"total":   len(orders),
		"message": fmt.Sprintf("found %d orders", len(orders)),
	})
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update")
	orderID := c.Param("orderId")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}

	order, err := h.Svc.UpdateOrder(ctx, orderID, req)
	if err != nil {
		return httpError(c, "update_order_error", failMessage(err, orderID, "cannot update order"), err)
	}

	l.Info("update_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    order,
		"message": "order updated",
	})
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")
	orderID := c.Param("orderId")

	order, err := h.Svc.DeleteOrder(ctx, orderID)
	if err != nil {
		return httpError(c, "delete_order_error", failMessage(err, orderID, "cannot delete order"), err)
	}

	l.Info("delete_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("order %s deleted", orderID),
		"data":    order,
	})
}

func failMessage(err error, orderID, fallback string) string {
	if errors.Is(err, service.ErrNotFound) {
		return fmt.Sprintf("order %s not found", orderID)
	}
	return fallback
}
