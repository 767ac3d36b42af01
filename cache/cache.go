package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"library-api/model"
)

const (
	borrowedKey = "borrowed_books"
	snapshotTTL = 600 * time.Second
)

// BorrowedCache is a read-through cache for the open-loans snapshot.
// Borrow and return evict the whole snapshot; the next read recomputes it.
type BorrowedCache struct {
	rdb *redis.Client
}

// New connects to redis at addr and verifies the connection.
func New(addr string) (*BorrowedCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &BorrowedCache{rdb: rdb}, nil
}

// NewWithClient wraps an existing redis client.
func NewWithClient(rdb *redis.Client) *BorrowedCache {
	return &BorrowedCache{rdb: rdb}
}

// Get returns the cached snapshot and whether it was present.
func (c *BorrowedCache) Get(ctx context.Context) ([]model.BorrowedBook, bool, error) {
	data, err := c.rdb.Get(ctx, borrowedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []model.BorrowedBook
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Set stores the snapshot with the fixed TTL.
func (c *BorrowedCache) Set(ctx context.Context, items []model.BorrowedBook) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, borrowedKey, data, snapshotTTL).Err()
}

// Invalidate evicts the snapshot.
func (c *BorrowedCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, borrowedKey).Err()
}
