package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	ListPublished(page, limit int) ([]models.Post, int64, error)
	ListAll(page, limit int) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(id uint) error
	Count() (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(page, limit int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}).Where("published = ?", true), page, limit)
}

func (r *postRepository) ListAll(page, limit int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}), page, limit)
}

func (r *postRepository) list(query *gorm.DB, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *postRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}
