// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"expensegst/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. The application layer handles
// these outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when a create collides with an existing
	// email. The store enforces uniqueness atomically; a concurrent duplicate
	// surfaces as this error, never as a generic database failure.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the sole gateway to persisted user records.
// No other component reads or writes user rows.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	// Email matching is case-sensitive (plain unique index policy).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage and fills in the
	// generated ID and timestamps. Fails with ErrDuplicateEmail if the email
	// is already registered.
	Create(ctx context.Context, user *entity.User) error
}
