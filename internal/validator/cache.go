package validator

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/mailgate/internal/domain"
)

const cacheKeyPrefix = "mailgate:verify:"

// cacheValid is the stored marker for a passing result; failing results
// store their reason code directly.
const cacheValid = "valid"

// Cache stores validation results in Redis with a TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a validation result cache.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result for address and whether one was present.
func (c *Cache) Get(ctx context.Context, address string) (Result, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	if val == cacheValid {
		return Result{Valid: true}, true, nil
	}
	return Result{Reason: domain.Reason(val)}, true, nil
}

// Set stores a result for address.
func (c *Cache) Set(ctx context.Context, address string, res Result) error {
	val := cacheValid
	if !res.Valid {
		val = string(res.Reason)
	}
	return c.rdb.Set(ctx, cacheKeyPrefix+address, val, c.ttl).Err()
}
