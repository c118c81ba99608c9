// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import accountdto "account_backend/internal/feature/account/transport/http/dto"

// CredentialsReq は/auth/registerと/auth/loginのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type CredentialsReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SocialLoginReq は/auth/login/socialのリクエストボディを表します。
type SocialLoginReq struct {
	ProviderType string `json:"providerType" binding:"required,oneof=CLASSIC GOOGLE APPLE"`
}

// RegisterRes は登録成功時のレスポンスです。作成されたアカウントとセッショントークンを含みます。
type RegisterRes struct {
	accountdto.AccountRes
	Token string `json:"token"`
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	AccessToken string `json:"access_token"`
}
