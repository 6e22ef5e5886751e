package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	logger       *logger.Logger
}

func NewOrderHandler(orderService services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: log}
}

type createOrderRequest struct {
	FullName string             `json:"full_name" binding:"required"`
	Email    string             `json:"email" binding:"required,email"`
	Phone    string             `json:"phone"`
	Address  string             `json:"address" binding:"required"`
	Notes    string             `json:"notes"`
	Items    []orderLineRequest `json:"items" binding:"required,min=1,dive"`
}

type orderLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, models.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orderService.PlaceOrder(services.PlaceOrderInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
		Items:    lines,
	})
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderByID(uint(id))
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)
	status := c.Query("status")

	orders, total, err := h.orderService.ListOrders(status, page, limit)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// respondOrderError maps domain errors onto the wire contract. Anything
// unexpected is logged with detail and answered generically.
func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		h.logger.Error("order request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
