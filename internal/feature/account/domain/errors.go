// Package domain defines domain-level errors for the account feature.
package domain

import "errors"

// Domain errors for credential and profile operations.
// All of them are client-input faults; the HTTP boundary maps them to status codes.
var (
	// ErrDuplicateAccount indicates that an account with the given email already exists.
	// It is returned by registration, including when the store's unique index rejects a racing insert.
	ErrDuplicateAccount = errors.New("profile already exists")

	// ErrAccountNotFound indicates that no account matches the given email or ID.
	ErrAccountNotFound = errors.New("can't find user with this email")

	// ErrInvalidCredentials indicates that the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrMissingToken indicates that the Authorization header does not carry a Bearer token.
	ErrMissingToken = errors.New("token is required")

	// ErrInvalidToken indicates that the bearer token could not be decoded into claims.
	ErrInvalidToken = errors.New("invalid token")
)
