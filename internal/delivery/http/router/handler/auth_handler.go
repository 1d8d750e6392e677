// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "expensegst/internal/delivery/context"
	"expensegst/internal/delivery/http/response"
	"expensegst/internal/domain/entity"
	"expensegst/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for credential and session handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// UserResponse is the public projection of a user. The credential hash is
// never part of this structure.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// AuthResponse pairs the public user projection with a session token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "Invalid registration input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, AuthResponse{
		User:  toUserResponse(output.User),
		Token: output.Token,
	}, "User registered successfully")
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "Invalid login input", nil)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AuthResponse{
		User:  toUserResponse(output.User),
		Token: output.Token,
	}, "Login successful")
}

// GetMe returns the authenticated user's identity. The auth middleware has
// already verified the token and attached the user ID to the context.
func (h *AuthHandler) GetMe(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}

	user, err := h.uc.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]UserResponse{
		"user": toUserResponse(user),
	}, "")
}
