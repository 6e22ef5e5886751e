package services

import (
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type PostService interface {
	ListPublished(page, limit int) ([]models.Post, int64, error)
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	ListAll(page, limit int) ([]models.Post, int64, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) ListPublished(page, limit int) ([]models.Post, int64, error) {
	return s.postRepo.ListPublished(page, limit)
}

func (s *postService) GetByID(id uint) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

func (s *postService) GetBySlug(slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(slug)
}

func (s *postService) ListAll(page, limit int) ([]models.Post, int64, error) {
	return s.postRepo.ListAll(page, limit)
}

func (s *postService) Create(post *models.Post) error {
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return s.postRepo.Create(post)
}

func (s *postService) Update(post *models.Post) error {
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return s.postRepo.Update(post)
}

func (s *postService) Delete(id uint) error {
	return s.postRepo.Delete(id)
}
