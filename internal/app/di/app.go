package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/app/router"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	authusecase "account_backend/internal/feature/auth/usecase"
	profilehandler "account_backend/internal/feature/profile/transport/handler"
	profileusecase "account_backend/internal/feature/profile/usecase"
	"account_backend/internal/platform/config"
	platformhandler "account_backend/internal/platform/http/handler"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/password"
	"account_backend/internal/shared/ratelimiter"
)

// NewEngine は設定と接続済みのストアからHTTPエンジン全体を組み立てます。
// rdbはnilでもよく、その場合キャッシュとRedisのヘルスチェックは無効になります。
func NewEngine(cfg config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	codec, err := jwtmw.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	hasher := password.NewArgon2Hasher(password.Params{
		Memory:      cfg.Password.Memory,
		Iterations:  cfg.Password.Iterations,
		Parallelism: cfg.Password.Parallelism,
	})

	// Repository
	accounts := NewAccountRepository(rdb, db, cfg.Redis.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(accounts, hasher, codec)
	profileUC := profileusecase.NewProfileUsecase(accounts)

	// Handler
	healthH := platformhandler.NewHealthHandler(healthChecks(db, rdb))
	authH := authhandler.NewAuthHandler(authUC)
	profileH := profilehandler.NewProfileHandler(profileUC)

	opts := router.Options{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimit.Requests > 0 {
		opts.AuthLimiter = ratelimiter.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Interval)
	}

	return router.NewRouter(healthH, authH, profileH, codec, opts), nil
}

func healthChecks(db *gorm.DB, rdb *redis.Client) map[string]platformhandler.Check {
	checks := map[string]platformhandler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
