package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key is absent; callers fall back to the
// database and repopulate.
var ErrMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) setJSON(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) getJSON(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// Product detail cache, keyed by slug.

func (c *Client) SetProduct(slug string, product *models.Product, ttl time.Duration) error {
	return c.setJSON("product:"+slug, product, ttl)
}

func (c *Client) GetProduct(slug string) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON("product:"+slug, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) InvalidateProduct(slug string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "product:"+slug).Err()
}

// Dashboard stats cache. Short TTL; the admin dashboard polls this.

func (c *Client) SetStats(stats map[string]interface{}, ttl time.Duration) error {
	return c.setJSON("dashboard:stats", stats, ttl)
}

func (c *Client) GetStats() (map[string]interface{}, error) {
	var stats map[string]interface{}
	if err := c.getJSON("dashboard:stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) InvalidateStats() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "dashboard:stats").Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
