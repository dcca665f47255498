// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"log/slog"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt reads at most this many bytes of a password.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	logger *slog.Logger
}

// NewBcryptHasher is the constructor for bcryptHasher.
// The cost comes from auth.bcryptCost and falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cfg *config.Config, logger *slog.Logger) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:   cost,
		logger: logger,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt only reads the first 72 bytes, so longer passwords are rejected instead of truncated.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domainerrors.ErrValidationFailed.WrapMessage("password exceeds 72 bytes")
	}
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// Passwords Hash would refuse never match, otherwise their first 72 bytes alone would.
func (h *bcryptHasher) Check(password, hash string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.logger.Warn("Stored password digest could not be parsed", slog.String("reason", err.Error()))
	}

	return false
}
