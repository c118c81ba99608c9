// Package usecase はauthフィーチャーのビジネスロジック（パスワード認証とソーシャルログイン）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
)

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じメールアドレスのアカウントが既に存在する場合、domain.ErrDuplicateAccountを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail は指定されたメールアドレスに一致するアカウントを取得します。
	// 存在しない場合、domain.ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify は定数時間比較でplainとencodedが一致するか判定します。
	Verify(encoded, plain string) (bool, error)
}

// TokenCodec はセッショントークンの発行とデコードを定義します。
type TokenCodec interface {
	// Issue は任意のクレームから署名済みトークンを生成します。
	Issue(claims map[string]any) (string, error)
	// Decode は署名を検証せずにクレームを取り出します。デコードできない場合はfalseを返します。
	Decode(token string) (map[string]any, bool)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   TokenCodec
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(accounts AccountRepository, hasher PasswordHasher, tokens TokenCodec) *authUsecase {
	return &authUsecase{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register はハッシュ化されたパスワードでCLASSICアカウントを登録し、セッショントークンを発行します。
// 戻り値のアカウントにはパスワードハッシュは含まれません。
func (u *authUsecase) Register(ctx context.Context, email, password string) (*entity.Account, string, error) {
	if _, err := u.accounts.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateAccount
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		Email:        email,
		PasswordHash: hashed,
		ProviderType: entity.ProviderClassic,
		Username:     entity.UsernameFromEmail(email),
	}
	// 同時登録の競合はストレージのユニーク制約で検出される
	if err := u.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, "", domain.ErrDuplicateAccount
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := u.issueSessionToken(account)
	if err != nil {
		return nil, "", err
	}

	return account.Sanitized(), token, nil
}

// Login はメールアドレスとパスワードでアカウントを認証し、成功時にセッショントークンを返します。
// アカウントが存在しない場合とパスワード不一致の場合は異なるエラーを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	account, err := u.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	// パスワード未設定のソーシャルアカウントはパスワードでログインできない
	if account.PasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}

	ok, err := u.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	return u.issueSessionToken(account)
}

// LoginWithSocial はAuthorizationヘッダーのBearerトークンからメールアドレスを読み取り、
// 既存アカウントを返すか、存在しなければproviderTypeで新規作成します。
//
// トークンの署名はIDプロバイダーに対して検証されません。呼び出し元が取得済みの
// トークンをそのまま信頼します。
func (u *authUsecase) LoginWithSocial(ctx context.Context, providerType entity.ProviderType, authorization string) (*entity.Account, error) {
	token, ok := extractBearerToken(authorization)
	if !ok {
		return nil, domain.ErrMissingToken
	}

	claims, ok := u.tokens.Decode(token)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, domain.ErrInvalidToken
	}
	picture, _ := claims["picture"].(string)

	existing, err := u.accounts.FindByEmail(ctx, email)
	if err == nil {
		return existing.Sanitized(), nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	account := &entity.Account{
		Email:        email,
		Avatar:       picture,
		ProviderType: providerType,
		Username:     entity.UsernameFromEmail(email),
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		if !errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		// 同じメールアドレスの初回ログインが並行した場合は勝者のアカウントを返す
		existing, err := u.accounts.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up account: %w", err)
		}
		return existing.Sanitized(), nil
	}

	return account.Sanitized(), nil
}

// issueSessionToken はアカウントIDとメールアドレスを束縛したトークンを発行します。
func (u *authUsecase) issueSessionToken(account *entity.Account) (string, error) {
	token, err := u.tokens.Issue(map[string]any{
		"sub":   account.ID,
		"email": account.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// extractBearerToken は "Bearer <token>" 形式のヘッダーからトークンを取り出します。
func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
