package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ManuelReschke/ShopFox/app/models"
)

// queryTimeout bounds every single repository call.
const queryTimeout = 5 * time.Second

var ErrUserExists = errors.New("user already exists")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByName(ctx context.Context, name string) (*models.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Order, error)
	// MarkPaid flips the order to paid. Unknown ids and already-paid orders
	// are not errors.
	MarkPaid(ctx context.Context, id uint) error
}
