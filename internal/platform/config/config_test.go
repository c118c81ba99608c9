package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults は必須項目のみ設定した場合にデフォルト値が適用されることを検証します。
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_NAME", "accounts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 60*time.Second, cfg.DB.ConnectTimeout)
	assert.False(t, cfg.DB.RunMigrations)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, uint32(65536), cfg.Password.Memory)
	assert.Equal(t, uint8(4), cfg.Password.Parallelism)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Interval)
}

// TestLoad_FromEnv は環境変数から設定が正しく読み込まれることを検証します。
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "6543", cfg.DB.Port)
	assert.Equal(t, "envuser", cfg.DB.User)
	assert.Equal(t, "envpass", cfg.DB.Password)
	assert.Equal(t, "envdb", cfg.DB.Name)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, "cache", cfg.Redis.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

// TestLoad_MissingRequired は必須項目が欠けている場合にエラーを返すことを検証します。
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "DB_NAME is required")
}

// TestLoad_NegativeRateLimit は負のレート上限を拒否することを検証します。
func TestLoad_NegativeRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_NAME", "accounts")
	t.Setenv("AUTH_RATE_LIMIT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_RATE_LIMIT")
}

// TestLoad_InvalidDuration は不正な期間指定でエラーを返すことを検証します。
func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_NAME", "accounts")
	t.Setenv("JWT_TTL", "thirty days")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
