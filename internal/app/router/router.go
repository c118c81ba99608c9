// Package router はHTTPルーティングを組み立てます。
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "account_backend/internal/feature/auth/transport/handler"
	profilehandler "account_backend/internal/feature/profile/transport/handler"
	platformhandler "account_backend/internal/platform/http/handler"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/shared/ratelimiter"
)

// Options はルーターの任意設定です。
type Options struct {
	// CORSAllowedOrigins が空の場合CORSミドルウェアは登録しない
	CORSAllowedOrigins []string
	// AuthLimiter がnilの場合 /auth 配下は制限しない
	AuthLimiter ratelimiter.Limiter
}

func NewRouter(health *platformhandler.HealthHandler, authHandler *authhandler.AuthHandler,
	profile *profilehandler.ProfileHandler, verifier jwtmw.Verifier, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)

	authGroup := r.Group("/auth")
	if opts.AuthLimiter != nil {
		authGroup.Use(ratelimiter.Middleware(opts.AuthLimiter))
	}
	{
		// 新規アカウント登録（JWT 発行）
		authGroup.POST("/register", authHandler.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", authHandler.Login)
		// ソーシャルログイン（Bearer トークンのクレームを利用）
		authGroup.POST("/login/social", authHandler.LoginWithSocial)
	}

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になる
	me := r.Group("/profile")
	me.Use(jwtmw.AuthRequired(verifier))
	{
		me.GET("/me", profile.GetMe)
		me.PATCH("/me", profile.UpdateMe)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
