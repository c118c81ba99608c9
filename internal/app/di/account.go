// Package di はアプリケーションコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountadapters "account_backend/internal/feature/account/adapters"
	"account_backend/internal/feature/account/domain/repository"
	"account_backend/internal/platform/cache"
)

// NewAccountRepository はAccountRepositoryの実装を生成します。
// Redisが利用可能な場合はFindByIDをキャッシュするデコレーターで包みます。
// rdbがnilの場合、デコレーターは常に内側のリポジトリへ委譲します。
func NewAccountRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) repository.AccountRepository {
	return cache.NewCachingAccountRepository(rdb, ttl, accountadapters.NewAccountGorm(db), "accounts")
}
