package adapters

import (
	"time"

	"account_backend/internal/feature/account/domain/entity"
)

// AccountModel is the GORM model for the accounts table.
type AccountModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null;default:''"`
	ProviderType string    `gorm:"size:16;not null;default:CLASSIC"`
	Avatar       string    `gorm:"size:1024;not null;default:''"`
	Username     string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts the GORM model to a domain entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		ProviderType: entity.ProviderType(m.ProviderType),
		Avatar:       m.Avatar,
		Username:     m.Username,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// AccountModelFromEntity converts a domain entity to a GORM model.
func AccountModelFromEntity(a *entity.Account) *AccountModel {
	provider := a.ProviderType
	if provider == "" {
		provider = entity.ProviderClassic
	}
	return &AccountModel{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		ProviderType: string(provider),
		Avatar:       a.Avatar,
		Username:     a.Username,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
