package repository

import (
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type PromotionRepository interface {
	Create(promotion *models.Promotion) error
	GetByID(id uint) (*models.Promotion, error)
	GetActive(now time.Time) ([]models.Promotion, error)
	GetAll() ([]models.Promotion, error)
	Update(promotion *models.Promotion) error
	Delete(id uint) error
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

func (r *promotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.First(&promotion, id).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// GetActive returns promotions whose window contains now.
func (r *promotionRepository) GetActive(now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("starts_at DESC").
		Find(&promotions).Error
	return promotions, err
}

func (r *promotionRepository) GetAll() ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.Order("starts_at DESC").Find(&promotions).Error
	return promotions, err
}

func (r *promotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

func (r *promotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}
