// Package db はPostgreSQLへのGORM接続とスキーマ移行を提供します。
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	accountadapters "account_backend/internal/feature/account/adapters"
	"account_backend/internal/platform/config"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続に必要な設定値を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// ConfigFrom はアプリケーション設定からDB接続設定を取り出します。
func ConfigFrom(c config.DB) Config {
	return Config{
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		Host:     c.Host,
		Port:     c.Port,
		SSLMode:  c.SSLMode,
	}
}

// BuildDSN はpgx形式（key=value）のDSN文字列を生成します。
// 空の値は出力しません。
func BuildDSN(cfg Config) string {
	parts := make([]string, 0, 6)
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, quoteDSNValue(v)))
		}
	}
	add("host", cfg.Host)
	add("port", cfg.Port)
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)
	add("sslmode", cfg.SSLMode)
	return strings.Join(parts, " ")
}

// quoteDSNValue は空白や引用符を含む値をlibpqの規則で引用します。
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Opener はDSNからGORM接続を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener はPostgreSQLドライバーで接続を開きます。
// 一意制約違反などをgorm.ErrDuplicatedKeyに変換するためTranslateErrorを有効にします。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate はアカウントテーブルのスキーマを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&accountadapters.AccountModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB は設定に従ってPostgreSQLへ接続し、必要であればマイグレーションを実行します。
func OpenDB(c config.DB) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(ConfigFrom(c)), c.ConnectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "host", c.Host, "name", c.Name)

	if c.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		slog.Info("DB migration completed")
	}
	return db, nil
}
