package postgres

import (
	"context"

	"expensegst/internal/domain/entity"
	"expensegst/internal/domain/repository"
	"expensegst/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
// The lookup is case-sensitive: uniqueness is enforced by a plain unique
// index on the email column.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database. A unique-constraint
// violation on the email column, including one raised by a concurrent create,
// surfaces as repository.ErrDuplicateEmail.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
// A NULL password hash marks an externally provisioned account.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var credential entity.Credential
	if data.PasswordHash != nil {
		credential = entity.PasswordCredential{Hash: *data.PasswordHash}
	} else {
		credential = entity.ExternalCredential{}
	}

	return &entity.User{
		ID:         data.ID,
		Email:      data.Email,
		Name:       data.Name,
		Credential: credential,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:    data.ID,
		Email: data.Email,
		Name:  data.Name,
	}

	switch cred := data.Credential.(type) {
	case entity.PasswordCredential:
		hash := cred.Hash
		userM.PasswordHash = &hash
	case entity.ExternalCredential, nil:
		// PasswordHash stays NULL.
	}

	return userM
}
