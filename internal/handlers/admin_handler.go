package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminHandler is the back-office surface: catalog and content management
// plus the dashboard. Order management lives on OrderHandler.
type AdminHandler struct {
	catalogService   services.CatalogService
	postService      services.PostService
	contactService   services.ContactService
	dashboardService services.DashboardService
	logger           *logger.Logger
}

func NewAdminHandler(
	catalogService services.CatalogService,
	postService services.PostService,
	contactService services.ContactService,
	dashboardService services.DashboardService,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalogService:   catalogService,
		postService:      postService,
		contactService:   contactService,
		dashboardService: dashboardService,
		logger:           log,
	}
}

type productRequest struct {
	CategoryID  uint             `json:"category_id" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Stock       int              `json:"stock" binding:"gte=0"`
	IsActive    *bool            `json:"is_active"`
}

func (req *productRequest) apply(product *models.Product) {
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	if req.Slug != "" {
		product.Slug = req.Slug
	}
	product.Description = req.Description
	product.Price = req.Price
	if req.SalePrice != nil {
		product.SalePrice = decimal.NullDecimal{Decimal: *req.SalePrice, Valid: true}
	} else {
		product.SalePrice = decimal.NullDecimal{}
	}
	product.Stock = req.Stock
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	page, limit := pageParams(c)
	products, total, err := h.catalogService.ListProducts(repository.ProductListParams{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	product := &models.Product{IsActive: true}
	req.apply(product)
	if err := h.catalogService.CreateProduct(product); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	existing, err := h.catalogService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	req.apply(existing)
	if err := h.catalogService.UpdateProduct(existing); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": existing})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug, Description: req.Description}
	if err := h.catalogService.CreateCategory(category); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	category, err := h.catalogService.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	category.Name = req.Name
	if req.Slug != "" {
		category.Slug = req.Slug
	}
	category.Description = req.Description

	if err := h.catalogService.UpdateCategory(category); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type promotionRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	DiscountPercent float64   `json:"discount_percent" binding:"gte=0,lte=100"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	EndsAt          time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
	IsActive        *bool     `json:"is_active"`
}

func (h *AdminHandler) ListPromotions(c *gin.Context) {
	promotions, err := h.catalogService.ListAllPromotions()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": promotions})
}

func (h *AdminHandler) CreatePromotion(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	promotion := &models.Promotion{
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsActive:        true,
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := h.catalogService.CreatePromotion(promotion); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": promotion})
}

func (h *AdminHandler) UpdatePromotion(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	promotion, err := h.catalogService.GetPromotionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Promotion not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	promotion.Title = req.Title
	promotion.Description = req.Description
	promotion.DiscountPercent = req.DiscountPercent
	promotion.StartsAt = req.StartsAt
	promotion.EndsAt = req.EndsAt
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := h.catalogService.UpdatePromotion(promotion); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": promotion})
}

func (h *AdminHandler) DeletePromotion(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeletePromotion(id); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type postRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	page, limit := pageParams(c)
	posts, total, err := h.postService.ListAll(page, limit)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       posts,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *AdminHandler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	post := &models.Post{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Published: req.Published,
	}
	if err := h.postService.Create(post); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": post})
}

func (h *AdminHandler) UpdatePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	post, err := h.postService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.Published = req.Published
	if err := h.postService.Update(post); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(id); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListContacts(c *gin.Context) {
	page, limit := pageParams(c)
	messages, total, err := h.contactService.List(page, limit)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       messages,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *AdminHandler) MarkContactRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	message, err := h.contactService.MarkRead(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Message not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": message})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *AdminHandler) serverError(c *gin.Context, err error) {
	h.logger.Error("admin request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
