package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/order_api/internal/models"
)

var ErrInvalidField = errors.New("invalid field")

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ToOrder maps the external order shape onto the stored one. An empty
// dataCriacao yields the zero time.
func ToOrder(orderID string, req OrderRequest) (models.Order, error) {
	created, err := ParseDate(req.DataCriacao)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.Item, 0, len(req.Items))
	for i, it := range req.Items {
		productID, err := strconv.ParseInt(strings.TrimSpace(it.IDItem.String()), 10, 64)
		if err != nil {
			return models.Order{}, fmt.Errorf("%w: items[%d].idItem %q is not an integer", ErrInvalidField, i, it.IDItem.String())
		}
		items = append(items, models.Item{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  it.QuantidadeItem,
			Price:     it.ValorItem,
		})
	}

	var value int64
	if req.ValorTotal != nil {
		value = *req.ValorTotal
	}

	return models.Order{
		OrderID:      orderID,
		Value:        value,
		CreationDate: created,
		Items:        items,
	}, nil
}

func FromOrder(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			IDItem:         strconv.FormatInt(it.ProductID, 10),
			QuantidadeItem: it.Quantity,
			ValorItem:      it.Price,
		})
	}
	return OrderResponse{
		NumeroPedido: o.OrderID,
		ValorTotal:   o.Value,
		DataCriacao:  FormatDate(o.CreationDate),
		Items:        items,
	}
}

func FromOrders(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: dataCriacao %q is not an ISO-8601 date", ErrInvalidField, s)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func FromUser(u models.User) UserResponse {
	created := u.CreatedAt
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: &created}
}
