// Package entity defines the domain entities for the account feature.
package entity

import (
	"strings"
	"time"
)

// ProviderType identifies how an account was first created.
type ProviderType string

const (
	ProviderClassic ProviderType = "CLASSIC"
	ProviderGoogle  ProviderType = "GOOGLE"
	ProviderApple   ProviderType = "APPLE"
)

// Valid reports whether p is one of the supported provider types.
func (p ProviderType) Valid() bool {
	switch p {
	case ProviderClassic, ProviderGoogle, ProviderApple:
		return true
	}
	return false
}

// Account represents a registered user of the service.
type Account struct {
	// ID is a server-generated UUID.
	ID string

	// Email is the external lookup key. It is unique and compared case-sensitively.
	Email string

	// PasswordHash is the encoded Argon2id hash.
	// It is empty for social accounts that never set a password.
	PasswordHash string

	// ProviderType is fixed at creation time.
	ProviderType ProviderType

	Avatar   string
	Username string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitized returns a copy of the account with the password hash cleared.
// Every account leaving a usecase goes through this.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}
	out := *a
	out.PasswordHash = ""
	return &out
}

// UsernameFromEmail returns the local part of an email address.
// An address without '@' is returned unchanged.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// AccountUpdate carries the profile fields that may change after creation.
// Nil fields are left untouched. Email, ProviderType and PasswordHash are not updatable.
type AccountUpdate struct {
	Username *string
	Avatar   *string
}

// IsEmpty reports whether the update changes nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.Username == nil && u.Avatar == nil
}
