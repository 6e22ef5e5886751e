package models

import (
	"time"
)

type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"unique;not null"`
	Excerpt     string     `json:"excerpt" gorm:"type:text"`
	Content     string     `json:"content" gorm:"type:text"`
	Published   bool       `json:"published" gorm:"default:false"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
