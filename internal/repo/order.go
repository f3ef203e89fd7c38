package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/order_api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewOrderRepo(db *gorm.DB, timeout time.Duration) *OrderRepo {
	return &OrderRepo{DB: db, Timeout: timeout}
}

func (r *OrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	ctx, cancel := scoped(ctx, r.Timeout)
	defer cancel()

	items := withOrderID(order.Items, order.OrderID)
	header := models.Order{OrderID: order.OrderID, Value: order.Value, CreationDate: order.CreationDate}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&header).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrOrderExists
			}
			return err
		}
		return insertItems(tx, items)
	})
	if err != nil {
		return nil, err
	}

	header.Items = items
	return &header, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := scoped(ctx, r.Timeout)
	defer cancel()

	order, err := loadOrder(r.DB.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders scans the whole table, newest first.
func (r *OrderRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := scoped(ctx, r.Timeout)
	defer cancel()

	orders := make([]models.Order, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Items", itemOrdering).
		Order("creation_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []models.Item{}
		}
	}
	return orders, nil
}

// UpdateOrder overwrites the header and replaces the whole item set. An empty
// items slice clears the stored items.
func (r *OrderRepo) UpdateOrder(ctx context.Context, orderID string, order *models.Order) (*models.Order, error) {
	ctx, cancel := scoped(ctx, r.Timeout)
	defer cancel()

	items := withOrderID(order.Items, orderID)
	var updated *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Order
		if err := tx.Select("order_id").Where("order_id = ?", orderID).Take(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := tx.Model(&models.Order{}).Where("order_id = ?", orderID).Updates(map[string]any{
			"value":         order.Value,
			"creation_date": order.CreationDate,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		if err := insertItems(tx, items); err != nil {
			return err
		}

		o, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOrder removes the items first, then the header, and returns what was
// removed.
func (r *OrderRepo) DeleteOrder(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := scoped(ctx, r.Timeout)
	defer cancel()

	var deleted *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		res := tx.Where("order_id = ?", orderID).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		deleted = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func loadOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items", itemOrdering).Where("order_id = ?", orderID).Take(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Items == nil {
		order.Items = []models.Item{}
	}
	return &order, nil
}

func insertItems(tx *gorm.DB, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func itemOrdering(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func withOrderID(items []models.Item, orderID string) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		it.ID = 0
		it.OrderID = orderID
		out[i] = it
	}
	return out
}
