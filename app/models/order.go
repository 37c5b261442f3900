package models

import (
	"strconv"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// Order is a priced cart owned by one user. Amount is in whole currency units
// and is fixed at creation; Status only ever moves from pending to paid.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	Amount    int64       `gorm:"not null" json:"amount"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewPendingOrder returns an unsaved order in the pending state.
func NewPendingOrder(userID uint, amount int64) *Order {
	return &Order{
		UserID: userID,
		Amount: amount,
		Status: OrderStatusPending,
	}
}

func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// Reference is the order id as sent to the payment gateway.
func (o *Order) Reference() string {
	return strconv.FormatUint(uint64(o.ID), 10)
}

// ParseOrderReference is the inverse of Reference.
func ParseOrderReference(ref string) (uint, error) {
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
