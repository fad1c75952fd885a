package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// ProductRedisCache 商品详情读缓存
type ProductRedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewProductRedisCache(client redis.UniversalClient) *ProductRedisCache {
	return &ProductRedisCache{
		client: client,
		prefix: "catalog:product:",
		ttl:    30 * time.Minute,
	}
}

func (c *ProductRedisCache) key(id uint) string {
	return c.prefix + strconv.FormatUint(uint64(id), 10)
}

func (c *ProductRedisCache) Get(ctx context.Context, id uint) (*domain.Product, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product from redis: %w", err)
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func (c *ProductRedisCache) Set(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == 0 {
		return nil
	}
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return c.client.Set(ctx, c.key(product.ID), data, c.ttl).Err()
}

func (c *ProductRedisCache) Invalidate(ctx context.Context, id uint) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
