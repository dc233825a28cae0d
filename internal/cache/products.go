package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

// ProductCache is a read-through cache for product point lookups. A nil
// cache (or one without a client) is a silent pass-through, so redis stays
// optional in dev and tests.
type ProductCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{RDB: rdb, TTL: ttl}
}

func (pc *ProductCache) key(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (pc *ProductCache) Get(ctx context.Context, id uint) (*models.Product, bool) {
	if pc == nil || pc.RDB == nil {
		return nil, false
	}

	raw, err := pc.RDB.Get(ctx, pc.key(id)).Result()
	if err != nil {
		// redis.Nil and transport errors are both just a miss.
		return nil, false
	}

	var p models.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (pc *ProductCache) Set(ctx context.Context, p *models.Product) error {
	if pc == nil || pc.RDB == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return pc.RDB.Set(ctx, pc.key(p.ID), data, pc.TTL).Err()
}

func (pc *ProductCache) Invalidate(ctx context.Context, id uint) error {
	if pc == nil || pc.RDB == nil {
		return nil
	}
	return pc.RDB.Del(ctx, pc.key(id)).Err()
}
