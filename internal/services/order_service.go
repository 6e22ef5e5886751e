package services

import (
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// PlaceOrderInput is a validated checkout request: customer contact plus
// the cart lines to price.
type PlaceOrderInput struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	Notes    string
	Items    []models.OrderLine
}

type OrderService interface {
	PlaceOrder(input PlaceOrderInput) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	ListOrders(status string, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	statsCache StatsCache
}

func NewOrderService(orderRepo repository.OrderRepository, statsCache StatsCache) OrderService {
	return &orderService{orderRepo: orderRepo, statsCache: statsCache}
}

// PlaceOrder validates the request and hands the atomic part to the
// repository. Nothing touches the database until validation passes.
func (s *orderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name is required", models.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", models.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, models.ErrEmptyOrder
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d",
				models.ErrInvalidInput, line.ProductID)
		}
	}

	order := &models.Order{
		OrderNumber: newOrderNumber(),
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Address:     strings.TrimSpace(input.Address),
		Notes:       input.Notes,
	}

	if err := s.orderRepo.Place(order, input.Items); err != nil {
		return nil, err
	}
	if s.statsCache != nil {
		_ = s.statsCache.InvalidateStats()
	}
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) ListOrders(status string, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, 0, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	return s.orderRepo.List(status, page, limit)
}

// UpdateStatus sets any known status from any current one. The transition
// graph is deliberately not enforced; admins can and do move orders
// backwards to fix mistakes.
func (s *orderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if s.statsCache != nil {
		_ = s.statsCache.InvalidateStats()
	}
	return order, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
