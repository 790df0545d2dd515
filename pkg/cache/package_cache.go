package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActivePackage is the cached answer to "which package serves this product
// right now". It is invalidated on publish and rollback.
type ActivePackage struct {
	PackageID string `json:"package_id"`
	Version   int    `json:"version"`
}

type PackageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPackageCache(rdb *redis.Client, ttl time.Duration) *PackageCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PackageCache{rdb: rdb, ttl: ttl}
}

func key(productID string) string {
	return fmt.Sprintf("active_package:%s", productID)
}

// Get returns the cached active package, or (nil, nil) on a miss. Redis
// being down is reported as a miss so the caller falls through to the
// database.
func (c *PackageCache) Get(ctx context.Context, productID string) (*ActivePackage, error) {
	if c.rdb == nil {
		return nil, nil
	}
	val, err := c.rdb.Get(ctx, key(productID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, nil
	}
	var pkg ActivePackage
	if err := json.Unmarshal([]byte(val), &pkg); err != nil {
		return nil, nil
	}
	return &pkg, nil
}

func (c *PackageCache) Set(ctx context.Context, productID string, pkg ActivePackage) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(pkg)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(productID), data, c.ttl)
}

func (c *PackageCache) Invalidate(ctx context.Context, productID string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(productID))
}
