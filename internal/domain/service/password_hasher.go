// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// embedded in the output, so Check needs no separate salt parameter.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// It returns false for any mismatch, including malformed stored hashes.
	Check(password, hash string) bool
}
