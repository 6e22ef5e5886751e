package services

import (
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// CatalogCache is the slice of the cache the catalog needs; *cache.Client
// satisfies it, tests substitute a fake.
type CatalogCache interface {
	GetProduct(slug string) (*models.Product, error)
	SetProduct(slug string, product *models.Product, ttl time.Duration) error
	InvalidateProduct(slug string) error
}

type CatalogService interface {
	ListProducts(params repository.ProductListParams) ([]models.Product, int64, error)
	GetProductByID(id uint) (*models.Product, error)
	GetProductBySlug(slug string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error

	ListCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error

	ListActivePromotions() ([]models.Promotion, error)
	ListAllPromotions() ([]models.Promotion, error)
	GetPromotionByID(id uint) (*models.Promotion, error)
	CreatePromotion(promotion *models.Promotion) error
	UpdatePromotion(promotion *models.Promotion) error
	DeletePromotion(id uint) error
}

type catalogService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	promotionRepo repository.PromotionRepository
	cache         CatalogCache
	cacheTTL      time.Duration
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	promotionRepo repository.PromotionRepository,
	cacheClient CatalogCache,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		promotionRepo: promotionRepo,
		cache:         cacheClient,
		cacheTTL:      cacheTTL,
	}
}

func (s *catalogService) ListProducts(params repository.ProductListParams) ([]models.Product, int64, error) {
	return s.productRepo.List(params)
}

func (s *catalogService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductBySlug reads through the cache; a miss or a cache error of any
// kind falls back to the database.
func (s *catalogService) GetProductBySlug(slug string) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(slug); err == nil {
			return product, nil
		}
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetProduct(slug, product, s.cacheTTL)
	}
	return product, nil
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	// An edit may rename the slug; the entry cached under the previous
	// slug has to go too.
	var previousSlug string
	if s.cache != nil {
		if existing, err := s.productRepo.GetByID(product.ID); err == nil {
			previousSlug = existing.Slug
		}
	}

	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateProduct(product.Slug)
		if previousSlug != "" && previousSlug != product.Slug {
			_ = s.cache.InvalidateProduct(previousSlug)
		}
	}
	return nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateProduct(product.Slug)
	}
	return nil
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *catalogService) GetCategoryByID(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

func (s *catalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(slug)
}

func (s *catalogService) CreateCategory(category *models.Category) error {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

func (s *catalogService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) ListActivePromotions() ([]models.Promotion, error) {
	return s.promotionRepo.GetActive(time.Now())
}

func (s *catalogService) ListAllPromotions() ([]models.Promotion, error) {
	return s.promotionRepo.GetAll()
}

func (s *catalogService) GetPromotionByID(id uint) (*models.Promotion, error) {
	return s.promotionRepo.GetByID(id)
}

func (s *catalogService) CreatePromotion(promotion *models.Promotion) error {
	return s.promotionRepo.Create(promotion)
}

func (s *catalogService) UpdatePromotion(promotion *models.Promotion) error {
	return s.promotionRepo.Update(promotion)
}

func (s *catalogService) DeletePromotion(id uint) error {
	return s.promotionRepo.Delete(id)
}

// Slugify lowercases and hyphenates a name for URL use.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return -1
	}, slug)
}
