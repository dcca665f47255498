package service

import (
	"authsvc/internal/domain/entity"
)

// TokenService defines the interface for issuing and validating signed access tokens.
type TokenService interface {
	// Issue signs the claims with an expiry ttlMinutes from now.
	// Subject and Email are taken from claims; IssuedAt and ExpiresAt are set by the service.
	Issue(claims *entity.Claims, ttlMinutes int) (string, error)

	// Validate checks the signature, algorithm and expiry of a token and returns its claims.
	Validate(token string) (*entity.Claims, error)
}
