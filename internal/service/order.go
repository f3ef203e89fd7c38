package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/order_api/internal/events"
	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/models"
	"github.com/Skotchmaster/order_api/internal/repo"
	"github.com/Skotchmaster/order_api/internal/transport"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, orderID string, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) (*models.Order, error)
}

type OrderService struct {
	Repo      OrderStore
	Publisher events.Publisher
	Now       func() time.Time
}

func (s *OrderService) CreateOrder(ctx context.Context, req transport.OrderRequest) (*transport.OrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if err := validateOrderRequest(req, true); err != nil {
		return nil, err
	}
	orderID := strings.TrimSpace(req.NumeroPedido)

	order, err := s.toOrder(orderID, req)
	if err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateOrder(ctx, &order)
	if err != nil {
		if errors.Is(err, repo.ErrOrderExists) {
			return nil, fmt.Errorf("%w: order %s already exists", ErrConflict, orderID)
		}
		l.Error("create_order_error", "order_id", orderID, "error", err)
		return nil, err
	}

	resp := transport.FromOrder(*created)
	s.publish(ctx, "order_created", orderID, resp)
	return &resp, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*transport.OrderResponse, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, mapRepoErr(err, orderID)
	}
	resp := transport.FromOrder(*order)
	return &resp, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]transport.OrderResponse, error) {
	orders, err := s.Repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromOrders(orders), nil
}

// UpdateOrder replaces the header and the whole item set of orderID. The
// body's numeroPedido is required but the path key wins.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req transport.OrderRequest) (*transport.OrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "order.update")

	if err := validateOrderRequest(req, false); err != nil {
		return nil, err
	}

	order, err := s.toOrder(orderID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateOrder(ctx, orderID, &order)
	if err != nil {
		if !errors.Is(err, repo.ErrOrderNotFound) {
			l.Error("update_order_error", "order_id", orderID, "error", err)
		}
		return nil, mapRepoErr(err, orderID)
	}

	resp := transport.FromOrder(*updated)
	s.publish(ctx, "order_updated", orderID, resp)
	return &resp, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) (*transport.OrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "order.delete")

	deleted, err := s.Repo.DeleteOrder(ctx, orderID)
	if err != nil {
		if !errors.Is(err, repo.ErrOrderNotFound) {
			l.Error("delete_order_error", "order_id", orderID, "error", err)
		}
		return nil, mapRepoErr(err, orderID)
	}

	resp := transport.FromOrder(*deleted)
	s.publish(ctx, "order_deleted", orderID, map[string]string{"numeroPedido": orderID})
	return &resp, nil
}

func (s *OrderService) toOrder(orderID string, req transport.OrderRequest) (models.Order, error) {
	order, err := transport.ToOrder(orderID, req)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if order.CreationDate.IsZero() {
		order.CreationDate = s.now().UTC()
	}
	return order, nil
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderService) publish(ctx context.Context, eventType, orderID string, payload any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, events.TopicOrders, orderID, events.New(eventType, payload)); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "event", eventType, "order_id", orderID, "error", err)
	}
}

func validateOrderRequest(req transport.OrderRequest, requireItems bool) error {
	var missing []string
	if strings.TrimSpace(req.NumeroPedido) == "" {
		missing = append(missing, "numeroPedido")
	}
	if req.ValorTotal == nil {
		missing = append(missing, "valorTotal")
	}
	if req.Items == nil {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if *req.ValorTotal < 0 {
		return fmt.Errorf("%w: valorTotal must be >= 0", ErrValidation)
	}
	if requireItems && len(req.Items) == 0 {
		return fmt.Errorf("%w: order must have at least one item", ErrValidation)
	}
	for i, it := range req.Items {
		if it.QuantidadeItem <= 0 {
			return fmt.Errorf("%w: items[%d].quantidadeItem must be > 0", ErrValidation, i)
		}
		if it.ValorItem < 0 {
			return fmt.Errorf("%w: items[%d].valorItem must be >= 0", ErrValidation, i)
		}
	}
	return nil
}

func mapRepoErr(err error, orderID string) error {
	if errors.Is(err, repo.ErrOrderNotFound) {
		return fmt.Errorf("%w: order %s not found", ErrNotFound, orderID)
	}
	return err
}
