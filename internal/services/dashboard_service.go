package services

import (
	"time"

	"storefront/internal/repository"
)

// StatsCache caches the dashboard aggregate; order mutations invalidate it
// so the admin view does not lag a full TTL behind checkouts.
type StatsCache interface {
	GetStats() (map[string]interface{}, error)
	SetStats(stats map[string]interface{}, ttl time.Duration) error
	InvalidateStats() error
}

type DashboardService interface {
	GetStats() (map[string]interface{}, error)
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	postRepo    repository.PostRepository
	contactRepo repository.ContactRepository
	cache       StatsCache
	statsTTL    time.Duration
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	postRepo repository.PostRepository,
	contactRepo repository.ContactRepository,
	cacheClient StatsCache,
	statsTTL time.Duration,
) DashboardService {
	return &dashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		postRepo:    postRepo,
		contactRepo: contactRepo,
		cache:       cacheClient,
		statsTTL:    statsTTL,
	}
}

func (s *dashboardService) GetStats() (map[string]interface{}, error) {
	if s.cache != nil {
		if stats, err := s.cache.GetStats(); err == nil {
			return stats, nil
		}
	}

	ordersByStatus, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderRepo.Revenue()
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}

	postCount, err := s.postRepo.Count()
	if err != nil {
		return nil, err
	}

	unreadMessages, err := s.contactRepo.CountUnread()
	if err != nil {
		return nil, err
	}

	var totalOrders int64
	for _, count := range ordersByStatus {
		totalOrders += count
	}

	stats := map[string]interface{}{
		"total_orders":     totalOrders,
		"orders_by_status": ordersByStatus,
		"revenue":          revenue,
		"total_products":   productCount,
		"total_posts":      postCount,
		"unread_messages":  unreadMessages,
	}

	if s.cache != nil {
		_ = s.cache.SetStats(stats, s.statsTTL)
	}
	return stats, nil
}
