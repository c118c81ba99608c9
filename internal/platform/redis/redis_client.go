// Package redis はプロフィールキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/platform/config"
)

const pingTimeout = 5 * time.Second

// Addr はホストとポートからRedisのアドレスを組み立てます。
func Addr(c config.Redis) string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewRedisClient は設定に従ってRedisへ接続し、疎通を確認します。
// Hostが空の場合はキャッシュ無効としてnilを返します。
func NewRedisClient(ctx context.Context, c config.Redis) (*redis.Client, error) {
	if c.Host == "" {
		slog.Info("Redis disabled, profile cache is pass-through")
		return nil, nil
	}
	addr := Addr(c)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: c.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
