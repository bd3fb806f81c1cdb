// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

// CachingCompanyRepository decorates a CompanyRepository with Redis caching
// of the full list. Every successful write bumps a generation counter that is
// part of the list key, so a read that started before the write can only
// fill the key of the old generation and the next FetchAll reads the store.
type CachingCompanyRepository struct {
	inner     usecase.CompanyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CompanyRepository = (*CachingCompanyRepository)(nil)

// NewCachingCompanyRepository decorates a CompanyRepository with Redis caching.
// If ttl is 0, it defaults to 30 seconds. If namespace is empty, it uses "companies".
func NewCachingCompanyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CompanyRepository, namespace string) *CachingCompanyRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if namespace == "" {
		namespace = "companies"
	}
	return &CachingCompanyRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a company and invalidates the cached list.
func (c *CachingCompanyRepository) Create(ctx context.Context, fields entity.CompanyFields) (string, error) {
	id, err := c.inner.Create(ctx, fields)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx)
	return id, nil
}

// Update updates a company and invalidates the cached list.
func (c *CachingCompanyRepository) Update(ctx context.Context, id string, fields entity.CompanyFields) error {
	if err := c.inner.Update(ctx, id, fields); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a company and invalidates the cached list.
func (c *CachingCompanyRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID is not cached.
func (c *CachingCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return c.inner.FindByID(ctx, id)
}

// FetchAll returns the full list, checking the cache first then falling back to the database.
func (c *CachingCompanyRepository) FetchAll(ctx context.Context) ([]entity.Company, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchAll(ctx)
	}

	// 0) 書き込み前に読んだ世代のキーにだけ保存する
	gen, err := c.generation(ctx)
	if err != nil {
		slog.Warn("company list cache generation unavailable", "error", err, "key", c.genKey())
		return c.inner.FetchAll(ctx)
	}
	key := c.listKey(gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Company
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate advances the generation so the cached list is no longer read.
// A failure is logged; the entry still expires after ttl.
func (c *CachingCompanyRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.genKey()).Err(); err != nil {
		slog.Warn("failed to invalidate company list cache", "error", err, "key", c.genKey())
	}
}

// generation returns the current list generation. A missing counter is generation 0.
func (c *CachingCompanyRepository) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *CachingCompanyRepository) genKey() string {
	return c.namespace + ":gen"
}

// listKey is the cache key of the full list for one generation.
func (c *CachingCompanyRepository) listKey(gen int64) string {
	return c.namespace + ":all:" + strconv.FormatInt(gen, 10)
}
