// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"expensegst/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Validation tags are enforced by the delivery layer before the usecase runs.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user and a freshly issued session token.
// The credential hash is never part of this structure.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase defines the interface for credential and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new password-provisioned user and issues a session
	// token. Fails with the conflict error when the email is already taken,
	// including when a concurrent registration wins the race.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies an email/password pair and issues a session token.
	// An unknown email and a wrong password produce the identical failure.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetUserByID retrieves a user's public identity by ID.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
