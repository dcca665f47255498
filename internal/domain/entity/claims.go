package entity

import "time"

// Claims is the identity asserted by an access token.
// It is built fresh for every issuance and never stored.
type Claims struct {
	Subject   string    // The account's SubjectID ("sub").
	Email     string    // The account's email ("email").
	IssuedAt  time.Time // "iat"; set by the issuer.
	ExpiresAt time.Time // "exp"; set by the issuer from the configured TTL.
}

// TokenTypeBearer is the token_type returned alongside every access token.
const TokenTypeBearer = "bearer"
