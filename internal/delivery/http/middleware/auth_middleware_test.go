package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expensegst/config"
	deliverycontext "expensegst/internal/delivery/context"
	"expensegst/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	return cfg
}

func runAuthMiddleware(t *testing.T, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	tokenSvc, err := auth.NewJWTService(newTestTokenConfig(), nil)
	require.NoError(t, err)
	m := NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uuid.UUID
	var called bool
	next := func(c echo.Context) error {
		gotID, called = deliverycontext.GetUserID(c)

		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, m.Authenticate(next)(c))

	return rec, gotID, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokenSvc, err := auth.NewJWTService(newTestTokenConfig(), nil)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := tokenSvc.Issue(userID, "user@example.com")
	require.NoError(t, err)

	rec, gotID, called := runAuthMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, userID, gotID)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, _, called := runAuthMiddleware(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Authorization header is missing", body["message"])
}

func TestAuthenticate_NotBearer(t *testing.T) {
	rec, _, called := runAuthMiddleware(t, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	rec, _, called := runAuthMiddleware(t, "Bearer not-a-valid-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestAuthenticate_ForeignSignature(t *testing.T) {
	otherCfg := newTestTokenConfig()
	otherCfg.SecretKey.Token = "another_secret_key_very_long_for_testing"
	otherSvc, err := auth.NewJWTService(otherCfg, nil)
	require.NoError(t, err)

	token, err := otherSvc.Issue(uuid.New(), "user@example.com")
	require.NoError(t, err)

	rec, _, called := runAuthMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
