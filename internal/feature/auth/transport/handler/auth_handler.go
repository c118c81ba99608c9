// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	accountdto "account_backend/internal/feature/account/transport/http/dto"
	"account_backend/internal/feature/auth/transport/http/dto"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規アカウントを登録し、アカウントとセッショントークンを返します。
	Register(ctx context.Context, email, password string) (*entity.Account, string, error)
	// Login はアカウントを認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// LoginWithSocial はBearerトークンのクレームから既存アカウントを返すか新規作成します。
	LoginWithSocial(ctx context.Context, providerType entity.ProviderType, authorization string) (*entity.Account, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はアカウント登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は400を返却
// - 成功時はアカウントとトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, accountdto.ErrorRes{Error: err.Error()})
		return
	}
	account, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("account registered", "account_id", account.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterRes{AccountRes: accountdto.NewAccountRes(account), Token: token})
}

// Login はパスワードログインAPIエンドポイントを処理します。
// - アカウント未検出・パスワード不一致は400を返却
// - 認証成功時はトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, accountdto.ErrorRes{Error: err.Error()})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{AccessToken: token})
}

// LoginWithSocial はソーシャルログインAPIエンドポイントを処理します。
// - Bearerトークンがない・デコードできない場合は401を返却
// - 成功時はアカウント（パスワードハッシュなし）で200を返却
func (h *AuthHandler) LoginWithSocial(c *gin.Context) {
	var req dto.SocialLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("social login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, accountdto.ErrorRes{Error: err.Error()})
		return
	}
	account, err := h.auth.LoginWithSocial(c.Request.Context(), entity.ProviderType(req.ProviderType), c.GetHeader("Authorization"))
	if err != nil {
		slog.Warn("social login failed", "error", err, "provider", req.ProviderType, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("social login successful", "account_id", account.ID, "provider", req.ProviderType, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, accountdto.NewAccountRes(account))
}

// writeError はドメインエラーをステータスコードに対応付けます。
// ドメインエラー以外の詳細はクライアントに公開しません。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, accountdto.ErrorRes{Error: err.Error()})
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, accountdto.ErrorRes{Error: err.Error()})
	default:
		slog.Error("auth request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, accountdto.ErrorRes{Error: "internal server error"})
	}
}
