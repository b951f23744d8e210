// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"journal_backend/internal/feature/themes/domain/entity"
	"journal_backend/internal/feature/themes/usecase"
)

// CachingThemeDataRepository decorates a ThemeDataRepository with Redis
// caching. It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository.
//
// Samples are random per call; caching one pins the sample for the TTL. The
// theme data set changes rarely, so serving the same sample for a short
// window is acceptable and spares the aggregation round trip.
type CachingThemeDataRepository struct {
	inner     usecase.ThemeDataRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingThemeDataRepositoryがThemeDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ThemeDataRepository = (*CachingThemeDataRepository)(nil)

// NewCachingThemeDataRepository decorates a ThemeDataRepository with Redis
// caching. If ttl is 0, it defaults to 5 minutes. If namespace is empty, it
// uses "themedata".
func NewCachingThemeDataRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ThemeDataRepository, namespace string) *CachingThemeDataRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "themedata"
	}
	return &CachingThemeDataRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// SampleByTheme retrieves theme data, checking cache first then falling back
// to the database.
func (c *CachingThemeDataRepository) SampleByTheme(ctx context.Context, theme entity.ThemeType, sampleSize int) ([]entity.ThemeData, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.SampleByTheme(ctx, theme, sampleSize)
	}

	key := c.cacheKey(theme, sampleSize)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.ThemeData
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.SampleByTheme(ctx, theme, sampleSize)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific sample query.
func (c *CachingThemeDataRepository) cacheKey(theme entity.ThemeType, sampleSize int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, theme, sampleSize)
}
