// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authsvc/internal/domain/entity"
)

// ErrAccountNotFound is returned by FindByEmail when no account has the email.
// It is an expected outcome, not a store failure.
var ErrAccountNotFound = errors.New("account not found")

// ErrSubjectIDTaken is returned by Create when another account already holds the subject id.
// The caller may retry with a freshly minted one.
var ErrSubjectIDTaken = errors.New("subject id already taken")

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// FindByEmail retrieves the account with exactly this email, or ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account atomically and fills in its ID and CreatedAt.
	// A taken email yields domainerrors.ErrDuplicateEmail, a taken subject id yields
	// ErrSubjectIDTaken, and any other failure yields a StoreUnavailable error.
	Create(ctx context.Context, account *entity.Account) error
}
