package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// ItemCacheTTL is the time-to-live for cached items. Quantity changes
	// invalidate the entry explicitly, so the TTL only bounds staleness after
	// out-of-band database edits.
	ItemCacheTTL = time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized item read model stored as a Redis hash.
type CachedItem struct {
	ID                uuid.UUID
	Name              string
	Description       string
	UnitPrice         decimal.Decimal
	InitialQuantity   int
	CurrentQuantity   int
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}". Every quantity-changing path (sale, allocation,
// manual edit, delete) must call Delete so readers never see stale stock.
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	unitPrice, err := decimal.NewFromString(vals["unit_price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse unit_price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	initialQty, err := strconv.Atoi(vals["initial_quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse initial_quantity: %w", err)
	}
	currentQty, err := strconv.Atoi(vals["current_quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse current_quantity: %w", err)
	}
	threshold, err := strconv.Atoi(vals["low_stock_threshold"])
	if err != nil {
		return nil, fmt.Errorf("cache parse low_stock_threshold: %w", err)
	}

	return &CachedItem{
		ID:                id,
		Name:              vals["name"],
		Description:       vals["description"],
		UnitPrice:         unitPrice,
		InitialQuantity:   initialQty,
		CurrentQuantity:   currentQty,
		LowStockThreshold: threshold,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

// Set writes a cached item as a Redis hash with the cache TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"name", item.Name,
		"description", item.Description,
		"unit_price", item.UnitPrice.String(),
		"initial_quantity", strconv.Itoa(item.InitialQuantity),
		"current_quantity", strconv.Itoa(item.CurrentQuantity),
		"low_stock_threshold", strconv.Itoa(item.LowStockThreshold),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}
