// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a single account.
// The credential variant records how the account was provisioned.
type User struct {
	ID         uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Email      string     // The user's primary contact email, used as the login identifier. Unique across all users.
	Name       string     // The user's display name.
	Credential Credential // How this account authenticates. Never projected into API responses.
	CreatedAt  time.Time  // Timestamp of when this user account was created.
	UpdatedAt  time.Time  // Timestamp of the last modification to this user's data.
}

// Credential is a sealed variant describing an account's provisioning path.
// Exactly two implementations exist: PasswordCredential for accounts created
// with an email/password pair, and ExternalCredential for accounts provisioned
// through an external identity provider. Modeling this as a variant instead of
// a nullable hash makes the "cannot password-login" branch an explicit case.
type Credential interface {
	isCredential()
}

// PasswordCredential marks an account that can log in with a password.
// Hash holds the bcrypt hash, never the plaintext.
type PasswordCredential struct {
	Hash string
}

func (PasswordCredential) isCredential() {}

// ExternalCredential marks an account provisioned without a password
// (e.g. Google sign-in). Password login must be rejected for such accounts.
type ExternalCredential struct{}

func (ExternalCredential) isCredential() {}
