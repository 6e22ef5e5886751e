package services

import (
	"strings"
	"testing"
	"time"

	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestOrderService(t *testing.T) (OrderService, *gorm.DB) {
	t.Helper()
	db := newServicesTestDB(t)
	return NewOrderService(repository.NewOrderRepository(db), nil), db
}

type fakeStatsCache struct {
	stats       map[string]interface{}
	invalidated int
}

func (f *fakeStatsCache) GetStats() (map[string]interface{}, error) {
	if f.stats == nil {
		return nil, cache.ErrMiss
	}
	return f.stats, nil
}

func (f *fakeStatsCache) SetStats(stats map[string]interface{}, _ time.Duration) error {
	f.stats = stats
	return nil
}

func (f *fakeStatsCache) InvalidateStats() error {
	f.invalidated++
	f.stats = nil
	return nil
}

func seedTestProduct(t *testing.T, db *gorm.DB, price string, stock int) models.Product {
	t.Helper()

	category := models.Category{Name: "Coffee", Slug: "coffee"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		CategoryID: category.ID,
		Name:       "House Blend",
		Slug:       "house-blend",
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func validInput(productID uint) PlaceOrderInput {
	return PlaceOrderInput{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0123",
		Address:  "12 Analytical Row",
		Items:    []models.OrderLine{{ProductID: productID, Quantity: 1}},
	}
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	svc, db := newTestOrderService(t)

	input := validInput(1)
	input.Items = nil
	_, err := svc.PlaceOrder(input)
	require.ErrorIs(t, err, models.ErrEmptyOrder)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderRejectsMissingFields(t *testing.T) {
	svc, _ := newTestOrderService(t)

	input := validInput(1)
	input.FullName = "   "
	_, err := svc.PlaceOrder(input)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	input = validInput(1)
	input.Address = ""
	_, err = svc.PlaceOrder(input)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestOrderService(t)

	input := validInput(1)
	input.Items[0].Quantity = 0
	_, err := svc.PlaceOrder(input)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	input.Items[0].Quantity = -2
	_, err = svc.PlaceOrder(input)
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPlaceOrderSucceeds(t *testing.T) {
	svc, db := newTestOrderService(t)
	product := seedTestProduct(t, db, "10.00", 5)

	order, err := svc.PlaceOrder(validInput(product.ID))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, string(models.OrderPending), order.Status)
	assert.Equal(t, "Ada Lovelace", order.FullName)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, order.Items, 1)
}

func TestUpdateStatusRoundTrip(t *testing.T) {
	svc, db := newTestOrderService(t)
	product := seedTestProduct(t, db, "10.00", 5)

	order, err := svc.PlaceOrder(validInput(product.ID))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, string(models.OrderConfirmed))
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderConfirmed), updated.Status)

	_, err = svc.UpdateStatus(9999, string(models.OrderConfirmed))
	require.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, db := newTestOrderService(t)
	product := seedTestProduct(t, db, "10.00", 5)

	order, err := svc.PlaceOrder(validInput(product.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, "misplaced")
	require.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestOrderMutationsInvalidateStats(t *testing.T) {
	db := newServicesTestDB(t)
	product := seedTestProduct(t, db, "10.00", 5)

	statsCache := &fakeStatsCache{stats: map[string]interface{}{"total_orders": 0}}
	svc := NewOrderService(repository.NewOrderRepository(db), statsCache)

	order, err := svc.PlaceOrder(validInput(product.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, statsCache.invalidated)

	_, err = svc.UpdateStatus(order.ID, string(models.OrderConfirmed))
	require.NoError(t, err)
	assert.Equal(t, 2, statsCache.invalidated)

	// A rejected request must not churn the cache.
	_, err = svc.UpdateStatus(order.ID, "misplaced")
	require.Error(t, err)
	assert.Equal(t, 2, statsCache.invalidated)
}

func TestUpdateStatusAllowsBackwardMoves(t *testing.T) {
	svc, db := newTestOrderService(t)
	product := seedTestProduct(t, db, "10.00", 5)

	order, err := svc.PlaceOrder(validInput(product.ID))
	require.NoError(t, err)

	for _, status := range []string{
		string(models.OrderDelivered),
		string(models.OrderPending),
		string(models.OrderCancelled),
	} {
		updated, err := svc.UpdateStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}
