package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chicfit/storefront/internal/models"
)

const keyOrderStatus = "order_status:%d"

var TTLStatusCache = 5 * time.Minute

// StatusCache keeps the latest order status in redis so the status poll
// endpoint stays off the database. All operations are best-effort; a nil
// cache (redis not configured, tests) is a no-op.
type StatusCache struct {
	R *redis.Client
}

func New(addr string) *StatusCache {
	if addr == "" {
		return nil
	}
	return &StatusCache{R: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *StatusCache) SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) {
	if c == nil || c.R == nil {
		return
	}
	key := fmt.Sprintf(keyOrderStatus, orderID)
	_ = c.R.Set(ctx, key, string(status), TTLStatusCache).Err()
}

func (c *StatusCache) GetOrderStatus(ctx context.Context, orderID uint) (models.OrderStatus, bool) {
	if c == nil || c.R == nil {
		return "", false
	}
	key := fmt.Sprintf(keyOrderStatus, orderID)
	s, err := c.R.Get(ctx, key).Result()
	if err != nil || s == "" {
		return "", false
	}
	return models.OrderStatus(s), true
}

func (c *StatusCache) Close() error {
	if c == nil || c.R == nil {
		return nil
	}
	return c.R.Close()
}
