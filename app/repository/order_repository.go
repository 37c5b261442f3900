package repository

import (
	"context"
	"errors"

	"github.com/ManuelReschke/ShopFox/app/models"
	"gorm.io/gorm"
)

const defaultOrderListLimit = 50

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	if order.ID == 0 {
		return errors.New("order saved without an id")
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = defaultOrderListLimit
	}
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) MarkPaid(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Zero affected rows (unknown id) is not an error.
	return markPaidQuery(r.db.WithContext(ctx), id).Error
}

func markPaidQuery(db *gorm.DB, id uint) *gorm.DB {
	return db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", models.OrderStatusPaid)
}
