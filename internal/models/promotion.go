package models

import (
	"time"
)

type Promotion struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	DiscountPercent float64   `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at" gorm:"not null"`
	EndsAt          time.Time `json:"ends_at" gorm:"not null"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
