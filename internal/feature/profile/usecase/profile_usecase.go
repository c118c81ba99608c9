// Package usecase implements the business logic for the profile feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
)

// AccountRepository is the subset of the account store the profile feature needs.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	Update(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error)
}

// profileUsecase reads and updates the authenticated account's profile.
type profileUsecase struct {
	accounts AccountRepository
}

// NewProfileUsecase creates a new profileUsecase.
func NewProfileUsecase(accounts AccountRepository) *profileUsecase {
	return &profileUsecase{accounts: accounts}
}

// GetMyProfile returns the account with the given ID without its password hash.
func (u *profileUsecase) GetMyProfile(ctx context.Context, id string) (*entity.Account, error) {
	account, err := u.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return account.Sanitized(), nil
}

// UpdateProfile changes the username and/or avatar of the account.
func (u *profileUsecase) UpdateProfile(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error) {
	account, err := u.accounts.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return account.Sanitized(), nil
}
