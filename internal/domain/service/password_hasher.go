// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a self-describing, salted digest from a plaintext password.
	// Hashing the same password twice yields different digests.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest in constant time.
	// A digest that cannot be parsed never matches.
	Check(password, digest string) bool
}
