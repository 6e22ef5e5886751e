package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(page, limit int) ([]models.ContactMessage, int64, error)
	MarkRead(id uint) (*models.ContactMessage, error)
	CountUnread() (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) List(page, limit int) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var total int64

	query := r.db.Model(&models.ContactMessage{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *contactRepository) MarkRead(id uint) (*models.ContactMessage, error) {
	message, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	message.IsRead = true
	if err := r.db.Model(message).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *contactRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
