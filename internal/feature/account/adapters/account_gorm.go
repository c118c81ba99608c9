// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/domain/repository"
)

// pgUniqueViolation はPostgreSQLのユニーク制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// accountGorm はAccountRepositoryインターフェースのGORM実装です。
// 本番ではPostgreSQL、テストではSQLiteを使用します。
type accountGorm struct {
	db *gorm.DB
}

// accountGormがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ repository.AccountRepository = (*accountGorm)(nil)

// NewAccountGorm は指定されたgorm.DB接続でaccountGormの新しいインスタンスを生成します。
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// Create はアカウントをデータベースに追加し、ID・タイムスタンプを設定します。
// 同じメールアドレスのアカウントが既に存在する場合、domain.ErrDuplicateAccountを返します。
func (r *accountGorm) Create(ctx context.Context, a *entity.Account) error {
	if a == nil {
		return errors.New("account must not be nil")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	m := AccountModelFromEntity(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return err
	}

	a.ProviderType = entity.ProviderType(m.ProviderType)
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByEmail はメールアドレスでアカウントを取得します。
// 存在しない場合、domain.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID はIDでアカウントを取得します。
// 存在しない場合、domain.ErrAccountNotFoundを返します。
func (r *accountGorm) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.first(ctx, "id = ?", id)
}

// Update はnilでないフィールドのみを更新し、更新後のアカウントを返します。
// ProviderTypeとEmailは更新対象になりません。
func (r *accountGorm) Update(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error) {
	if fields.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	values := map[string]any{}
	if fields.Username != nil {
		values["username"] = *fields.Username
	}
	if fields.Avatar != nil {
		values["avatar"] = *fields.Avatar
	}

	res := r.db.WithContext(ctx).Model(&AccountModel{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *accountGorm) first(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// isUniqueViolation はドライバーに依存せずユニーク制約違反を判定します。
// TranslateErrorが有効ならgorm.ErrDuplicatedKeyに変換されています。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	// SQLite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
