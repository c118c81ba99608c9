// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/domain/repository"
)

// CachingAccountRepository decorates an AccountRepository with a Redis
// read-through cache for lookups by ID.
//
// Only FindByID is cached, and only sanitized accounts are written to Redis,
// so FindByID through this decorator never returns a password hash.
// FindByEmail and Create always go to the inner repository.
type CachingAccountRepository struct {
	inner     repository.AccountRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ repository.AccountRepository = (*CachingAccountRepository)(nil)

// NewCachingAccountRepository decorates an AccountRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "accounts".
// A nil rdb disables caching.
func NewCachingAccountRepository(rdb *redis.Client, ttl time.Duration, inner repository.AccountRepository, namespace string) *CachingAccountRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "accounts"
	}
	return &CachingAccountRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through to the inner repository.
func (c *CachingAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return c.inner.Create(ctx, account)
}

// FindByEmail passes through to the inner repository.
func (c *CachingAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID retrieves an account, checking cache first then falling back to the database.
func (c *CachingAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		a, err := c.inner.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return a.Sanitized(), nil
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Account
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	a, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := a.Sanitized()

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update writes through to the inner repository and invalidates the cached entry.
func (c *CachingAccountRepository) Update(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error) {
	a, err := c.inner.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.cacheKey(id)).Err() // Best effort: don't fail if cache deletion fails
	}
	return a, nil
}

// cacheKey generates the cache key for an account ID.
func (c *CachingAccountRepository) cacheKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
