// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "expensegst/internal/delivery/context"
	"expensegst/internal/domain/entity"
	domainerrors "expensegst/internal/domain/errors"
	"expensegst/internal/domain/repository"
	"expensegst/internal/domain/service"
	"expensegst/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It owns every business
// decision of the credential flow; uniqueness itself is delegated to the
// store's atomic create. The service keeps no in-process state.
type authService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokenSvc: params.TokenService,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:       input.Name,
		Email:      input.Email,
		Credential: entity.PasswordCredential{Hash: hashedPassword},
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent registration can win the race between the lookup above
		// and this create; the store's unique constraint reports it and it
		// surfaces as the same conflict, never a generic error.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration lost creation race", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	// Token issuance is not transactional with the create: if signing fails
	// here the user stays registered without a returned token and can still
	// log in. Accepted edge case.
	token, err := srv.tokenSvc.Issue(newUser.ID, newUser.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration",
			slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same failure as a wrong password: the response must not reveal
			// whether the email exists.
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	switch cred := user.Credential.(type) {
	case entity.PasswordCredential:
		if !srv.hasher.Check(input.Password, cred.Hash) {
			srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
	case entity.ExternalCredential:
		srv.log(ctx).Warn("Password login attempted on external account", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrExternalAccount, "login failed")
	default:
		return nil, errors.Errorf("unknown credential variant %T", cred)
	}

	token, err := srv.tokenSvc.Issue(user.ID, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login",
			slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// GetUserByID retrieves a user's public identity by ID.
func (srv *authService) GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Debug("Getting user", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
