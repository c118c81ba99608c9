package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"account_backend/internal/platform/config"
)

// TestBuildDSN はkey=value形式のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	cfg := Config{
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

// TestBuildDSN_SkipsEmptyValues は空の設定値がDSNに含まれないことを検証します。
func TestBuildDSN_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Host: "db", Name: "accounts"})

	assert.Equal(t, "host=db dbname=accounts", dsn)
}

// TestBuildDSN_QuotesSpecialCharacters は空白や引用符を含むパスワードが引用されることを検証します。
func TestBuildDSN_QuotesSpecialCharacters(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Password: `p a'ss`})

	assert.Equal(t, `password='p a\'ss'`, dsn)
}

// TestConfigFrom はアプリケーション設定から接続設定が取り出されることを検証します。
func TestConfigFrom(t *testing.T) {
	t.Parallel()

	got := ConfigFrom(config.DB{
		Host: "envhost", Port: "6543", User: "envuser",
		Password: "envpass", Name: "envdb", SSLMode: "require",
	})

	assert.Equal(t, Config{
		User: "envuser", Password: "envpass", Name: "envdb",
		Host: "envhost", Port: "6543", SSLMode: "require",
	}, got)
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// リトライ間隔の待機があるため並列化しない
	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, attempts)
}

// TestMigrate はアカウントテーブルが作成されることを検証します。
func TestMigrate(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("accounts"))
	assert.True(t, db.Migrator().HasIndex("accounts", "idx_accounts_email"))
}
