// Package dto defines the JSON views of accounts shared by the auth and profile transports.
package dto

import (
	"time"

	"account_backend/internal/feature/account/domain/entity"
)

// AccountRes is the client-facing view of an account.
// It has no password field, so a hash can never be serialized.
type AccountRes struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar"`
	ProviderType string    `json:"providerType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ErrorRes is the body returned for every failed request.
type ErrorRes struct {
	Error string `json:"error"`
}

// NewAccountRes builds the client view of a.
func NewAccountRes(a *entity.Account) AccountRes {
	return AccountRes{
		ID:           a.ID,
		Email:        a.Email,
		Username:     a.Username,
		Avatar:       a.Avatar,
		ProviderType: string(a.ProviderType),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
