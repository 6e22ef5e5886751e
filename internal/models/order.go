package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"unique;not null"`
	FullName    string          `json:"full_name" gorm:"not null"`
	Email       string          `json:"email" gorm:"not null"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address" gorm:"not null"`
	Notes       string          `json:"notes" gorm:"type:text"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status      string          `json:"status" gorm:"default:'pending';index"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipping  OrderStatus = "shipping"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderShipping, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine is one requested cart entry before pricing. Duplicate product
// ids are allowed; each line is priced and decremented on its own.
type OrderLine struct {
	ProductID uint
	Quantity  int
}
