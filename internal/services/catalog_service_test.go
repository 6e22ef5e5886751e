package services

import (
	"testing"
	"time"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCatalogCache struct {
	store       map[string]*models.Product
	invalidated []string
}

func (f *fakeCatalogCache) GetProduct(slug string) (*models.Product, error) {
	if product, ok := f.store[slug]; ok {
		return product, nil
	}
	return nil, cache.ErrMiss
}

func (f *fakeCatalogCache) SetProduct(slug string, product *models.Product, _ time.Duration) error {
	f.store[slug] = product
	return nil
}

func (f *fakeCatalogCache) InvalidateProduct(slug string) error {
	f.invalidated = append(f.invalidated, slug)
	delete(f.store, slug)
	return nil
}

func newTestCatalogService(t *testing.T, catalogCache CatalogCache) (CatalogService, *gorm.DB) {
	t.Helper()
	db := newServicesTestDB(t)
	svc := NewCatalogService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewPromotionRepository(db),
		catalogCache,
		time.Minute,
	)
	return svc, db
}

func TestUpdateProductInvalidatesRenamedSlug(t *testing.T) {
	catalogCache := &fakeCatalogCache{store: map[string]*models.Product{}}
	svc, db := newTestCatalogService(t, catalogCache)

	category := models.Category{Name: "Coffee", Slug: "coffee"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		CategoryID: category.ID,
		Name:       "House Blend",
		Slug:       "house-blend",
		Price:      decimal.RequireFromString("10.00"),
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)

	// Prime the cache under the original slug.
	_, err := svc.GetProductBySlug("house-blend")
	require.NoError(t, err)
	require.Contains(t, catalogCache.store, "house-blend")

	edited, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	edited.Slug = "house-blend-250g"
	require.NoError(t, svc.UpdateProduct(edited))

	assert.Contains(t, catalogCache.invalidated, "house-blend")
	assert.Contains(t, catalogCache.invalidated, "house-blend-250g")
	assert.NotContains(t, catalogCache.store, "house-blend")
}

func TestGetProductBySlugReadsThroughCache(t *testing.T) {
	catalogCache := &fakeCatalogCache{store: map[string]*models.Product{}}
	svc, db := newTestCatalogService(t, catalogCache)

	category := models.Category{Name: "Coffee", Slug: "coffee"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		CategoryID: category.ID,
		Name:       "House Blend",
		Slug:       "house-blend",
		Price:      decimal.RequireFromString("10.00"),
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)

	first, err := svc.GetProductBySlug("house-blend")
	require.NoError(t, err)
	require.Contains(t, catalogCache.store, "house-blend")

	// Served from cache even after the row disappears.
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)
	second, err := svc.GetProductBySlug("house-blend")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"House Blend 250g":       "house-blend-250g",
		"  Spaced   Out  ":       "spaced-out",
		"Ceramic Pour-Over (V2)": "ceramic-pour-over-v2",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
