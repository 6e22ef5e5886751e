package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	log, err := logger.New("development")
	require.NoError(t, err)

	orderService := services.NewOrderService(repository.NewOrderRepository(db), nil)
	handler := NewOrderHandler(orderService, log)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/orders", handler.CreateOrder)
	api.GET("/orders/:id", handler.GetOrder)
	admin := api.Group("/admin")
	admin.GET("/orders", handler.ListOrders)
	admin.PUT("/orders/:id/status", handler.UpdateOrderStatus)

	return router, db
}

func seedHandlerProduct(t *testing.T, db *gorm.DB, price string, stock int) models.Product {
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

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func orderBody(productID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
		"phone":     "555-0123",
		"address":   "12 Analytical Row",
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": quantity},
		},
	}
}

func TestCreateOrderReturns201(t *testing.T) {
	router, db := newTestRouter(t)
	product := seedHandlerProduct(t, db, "12.50", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(product.ID, 2))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID          uint               `json:"id"`
			OrderNumber string             `json:"order_number"`
			TotalAmount decimal.Decimal    `json:"total_amount"`
			Status      string             `json:"status"`
			Items       []models.OrderItem `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Data.ID)
	assert.NotEmpty(t, resp.Data.OrderNumber)
	assert.Equal(t, "pending", resp.Data.Status)
	assert.True(t, resp.Data.TotalAmount.Equal(decimal.RequireFromString("25.00")))
	assert.Len(t, resp.Data.Items, 1)
}

func TestCreateOrderRejectsBadEmail(t *testing.T) {
	router, db := newTestRouter(t)
	product := seedHandlerProduct(t, db, "12.50", 10)

	body := orderBody(product.ID, 1)
	body["email"] = "not-an-email"
	rec := doJSON(t, router, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	router, db := newTestRouter(t)
	seedHandlerProduct(t, db, "12.50", 10)

	body := orderBody(1, 1)
	body["items"] = []map[string]interface{}{}
	rec := doJSON(t, router, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(9999, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestGetOrderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestUpdateOrderStatus(t *testing.T) {
	router, db := newTestRouter(t)
	product := seedHandlerProduct(t, db, "12.50", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/admin/orders/%d/status", created.Data.ID)
	rec = doJSON(t, router, http.MethodPut, path, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"confirmed"`)

	rec = doJSON(t, router, http.MethodPut, "/api/admin/orders/9999/status",
		map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersPagination(t *testing.T) {
	router, db := newTestRouter(t)
	product := seedHandlerProduct(t, db, "10.00", 100)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(product.ID, 1))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/admin/orders?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool               `json:"success"`
		Data       []json.RawMessage  `json:"data"`
		Pagination map[string]float64 `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, float64(3), resp.Pagination["total"])
	assert.Equal(t, float64(2), resp.Pagination["totalPages"])
}
