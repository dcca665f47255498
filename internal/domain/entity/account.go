// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is a registered identity that can log in with an email and password.
// Accounts are immutable once created.
type Account struct {
	ID             int64     // Store-assigned primary key. Never exposed outside the service.
	Email          string    // Unique login key. Compared exactly, case-sensitive.
	PasswordDigest string    // bcrypt digest of the password. Never logged or returned.
	SubjectID      string    // Random identifier bound at creation; the "sub" of every issued token.
	CreatedAt      time.Time // Timestamp of when the account was persisted.
}
