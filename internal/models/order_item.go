package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a priced line of an order. Price is the unit price captured
// at checkout time; catalog edits after the fact never change it.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null;index"`
	ProductName string          `json:"product_name" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
