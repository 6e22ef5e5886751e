package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogHandler serves the public storefront: products, categories,
// promotions, blog posts, and the contact form.
type CatalogHandler struct {
	catalogService services.CatalogService
	postService    services.PostService
	contactService services.ContactService
	logger         *logger.Logger
}

func NewCatalogHandler(
	catalogService services.CatalogService,
	postService services.PostService,
	contactService services.ContactService,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		postService:    postService,
		contactService: contactService,
		logger:         log,
	}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, limit := pageParams(c)
	params := repository.ProductListParams{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		ActiveOnly:   true,
		Page:         page,
		Limit:        limit,
	}

	products, total, err := h.catalogService.ListProducts(params)
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

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

func (h *CatalogHandler) ListCategoryProducts(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.catalogService.GetCategoryBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	page, limit := pageParams(c)
	products, total, err := h.catalogService.ListProducts(repository.ProductListParams{
		CategorySlug: slug,
		ActiveOnly:   true,
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

func (h *CatalogHandler) ListPromotions(c *gin.Context) {
	promotions, err := h.catalogService.ListActivePromotions()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": promotions})
}

func (h *CatalogHandler) ListPosts(c *gin.Context) {
	page, limit := pageParams(c)
	posts, total, err := h.postService.ListPublished(page, limit)
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

func (h *CatalogHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

func (h *CatalogHandler) CreateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactService.Submit(message); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": message})
}

func (h *CatalogHandler) serverError(c *gin.Context, err error) {
	h.logger.Error("catalog request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}
