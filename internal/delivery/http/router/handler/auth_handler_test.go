package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expensegst/config"
	"expensegst/internal/delivery/http/middleware"
	"expensegst/internal/delivery/http/validator"
	"expensegst/internal/domain/entity"
	domainerrors "expensegst/internal/domain/errors"
	infraauth "expensegst/internal/infra/auth"
	"expensegst/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase lets each test script the usecase outcome.
type stubUsecase struct {
	register    func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error)
	login       func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error)
	getUserByID func(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

func (s *stubUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return s.register(ctx, input)
}

func (s *stubUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.login(ctx, input)
}

func (s *stubUsecase) GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.getUserByID(ctx, userID)
}

func testServerConfig(env string) *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = env
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	return cfg
}

// newTestServer wires the handler into an echo instance the same way the real
// server does: request validator, error handler, and the auth middleware on
// the /me route.
func newTestServer(t *testing.T, uc usecase.AuthUsecase, cfg *config.Config) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger, cfg).HandleHTTPError

	tokenSvc, err := infraauth.NewJWTService(cfg, logger)
	require.NoError(t, err)
	authMw := middleware.NewAuthMiddleware(tokenSvc)

	h := NewAuthHandler(uc, logger)
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", h.GetMe, authMw.Authenticate)

	return e
}

func doJSON(e *echo.Echo, method, path, payload, token string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRegister_Created(t *testing.T) {
	userID := uuid.New()
	uc := &stubUsecase{
		register: func(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "Test User", input.Name)
			assert.Equal(t, "test@example.com", input.Email)

			return &usecase.AuthOutput{
				User: &entity.User{
					ID:         userID,
					Email:      input.Email,
					Name:       input.Name,
					Credential: entity.PasswordCredential{Hash: "secret_hash"},
				},
				Token: "signed_token",
			}, nil
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Test User","email":"test@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "User registered successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "signed_token", data["token"])

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userID.String(), user["id"])
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "Test User", user["name"])

	// The credential hash must never appear anywhere in the response body.
	assert.NotContains(t, rec.Body.String(), "secret_hash")
	assert.NotContains(t, user, "password")
}

func TestRegister_ValidationFailure(t *testing.T) {
	uc := &stubUsecase{
		register: func(context.Context, *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			t.Fatal("usecase must not run on invalid input")

			return nil, nil
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Test User","email":"not-an-email","password":"123"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Validation failed", body["message"])

	fields, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestRegister_EmailTaken(t *testing.T) {
	uc := &stubUsecase{
		register: func(context.Context, *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Test User","email":"taken@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "User with this email already exists", body["message"])
}

func TestRegister_MalformedBody(t *testing.T) {
	uc := &stubUsecase{}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/register", `{"name":`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	userID := uuid.New()
	uc := &stubUsecase{
		login: func(_ context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "test@example.com", input.Email)

			return &usecase.AuthOutput{
				User: &entity.User{
					ID:         userID,
					Email:      input.Email,
					Name:       "Test User",
					Credential: entity.PasswordCredential{Hash: "secret_hash"},
				},
				Token: "signed_token",
			}, nil
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Login successful", body["message"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc := &stubUsecase{
		login: func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"WrongPassword"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestLogin_ExternalAccount(t *testing.T) {
	uc := &stubUsecase{
		login: func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, errors.Wrap(domainerrors.ErrExternalAccount, "login failed")
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"google@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Please sign in with Google", body["message"])
}

func TestGetMe_Success(t *testing.T) {
	cfg := testServerConfig("production")
	userID := uuid.New()

	uc := &stubUsecase{
		getUserByID: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
			assert.Equal(t, userID, id)

			return &entity.User{
				ID:         userID,
				Email:      "test@example.com",
				Name:       "Test User",
				Credential: entity.PasswordCredential{Hash: "secret_hash"},
			}, nil
		},
	}
	e := newTestServer(t, uc, cfg)

	tokenSvc, err := infraauth.NewJWTService(cfg, nil)
	require.NoError(t, err)
	token, err := tokenSvc.Issue(userID, "test@example.com")
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/auth/me", "", token)

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userID.String(), user["id"])
	assert.NotContains(t, rec.Body.String(), "secret_hash")
}

func TestGetMe_MissingToken(t *testing.T) {
	e := newTestServer(t, &stubUsecase{}, testServerConfig("production"))

	rec := doJSON(e, http.MethodGet, "/api/auth/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMe_InvalidToken(t *testing.T) {
	e := newTestServer(t, &stubUsecase{}, testServerConfig("production"))

	rec := doJSON(e, http.MethodGet, "/api/auth/me", "", "garbage-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestGetMe_UserDeletedAfterTokenIssued(t *testing.T) {
	cfg := testServerConfig("production")
	userID := uuid.New()

	uc := &stubUsecase{
		getUserByID: func(context.Context, uuid.UUID) (*entity.User, error) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		},
	}
	e := newTestServer(t, uc, cfg)

	tokenSvc, err := infraauth.NewJWTService(cfg, nil)
	require.NoError(t, err)
	token, err := tokenSvc.Issue(userID, "test@example.com")
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/auth/me", "", token)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "User not found", body["message"])
}

func TestUnclassifiedErrorHidesCauseInProduction(t *testing.T) {
	uc := &stubUsecase{
		login: func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	e := newTestServer(t, uc, testServerConfig("production"))

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "stack")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestUnclassifiedErrorExposesStackInDevelopment(t *testing.T) {
	uc := &stubUsecase{
		login: func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	e := newTestServer(t, uc, testServerConfig(config.EnvDevelopment))

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"Password123"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	stack, ok := body["stack"].(string)
	require.True(t, ok)
	assert.Contains(t, stack, "connection refused")
}
