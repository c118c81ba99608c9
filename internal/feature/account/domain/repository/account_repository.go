// Package repository defines repository interfaces for the account feature.
package repository

import (
	"context"

	"account_backend/internal/feature/account/domain/entity"
)

// AccountRepository abstracts the persistence layer for account entities.
// Usecases declare narrower interfaces of their own; this full contract is
// what storage adapters and decorators implement.
type AccountRepository interface {
	// Create persists a new account and fills in ID and timestamps.
	// It returns domain.ErrDuplicateAccount if the email is already taken.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail returns domain.ErrAccountNotFound if no account has this email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID returns domain.ErrAccountNotFound if no account has this ID.
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// Update applies the non-nil fields and returns the updated account.
	// It returns domain.ErrAccountNotFound if no account has this ID.
	Update(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error)
}
