// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// RegisterInput defines the credentials for a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// TokenOutput carries a freshly issued access token.
type TokenOutput struct {
	AccessToken string
	TokenType   string
}

// AccountUsecase defines the registration and login operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*TokenOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)
}
