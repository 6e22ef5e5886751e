package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	CategoryID  uint                `json:"category_id" gorm:"not null;index"`
	Category    *Category           `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name        string              `json:"name" gorm:"not null"`
	Slug        string              `json:"slug" gorm:"unique;not null"`
	Description string              `json:"description" gorm:"type:text"`
	Price       decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	SalePrice   decimal.NullDecimal `json:"sale_price" gorm:"type:decimal(10,2)"`
	Stock       int                 `json:"stock" gorm:"not null;default:0"`
	IsActive    bool                `json:"is_active"`
	Images      []ProductImage      `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// EffectivePrice is the unit price a customer pays right now:
// the sale price when one is set, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}

type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	URL       string `json:"url" gorm:"not null"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}
