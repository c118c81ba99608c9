package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/platform/config"
)

func TestAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cache:6379", Addr(config.Redis{Host: "cache", Port: "6379"}))
	assert.Equal(t, "[::1]:6380", Addr(config.Redis{Host: "::1", Port: "6380"}))
}

// TestNewRedisClient_Disabled はHost未設定の場合にクライアントを生成しないことを検証します。
func TestNewRedisClient_Disabled(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), config.Redis{Port: "6379"})

	require.NoError(t, err)
	assert.Nil(t, rdb)
}

// TestNewRedisClient_Unreachable は接続できない場合にエラーを返すことを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rdb, err := NewRedisClient(ctx, config.Redis{Host: "127.0.0.1", Port: "1"})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
