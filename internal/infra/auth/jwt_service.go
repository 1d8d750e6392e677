// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"expensegst/config"
	domainerrors "expensegst/internal/domain/errors"
	"expensegst/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
	logger *slog.Logger
}

// NewJWTService is the constructor for jwtService.
// The secret is process-wide configuration loaded once at startup; rotating it
// invalidates all previously issued tokens.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	if strings.TrimSpace(cfg.SecretKey.Token) == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Token),
		ttl:    cfg.TokenTTL(),
		logger: logger,
	}, nil
}

// Issue creates a signed session token carrying the user's identity.
// Expiry is computed from the current wall-clock time plus the configured TTL
// and embedded in the token; verification needs no server-side state.
func (s *jwtService) Issue(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.String(),
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims.
// All failure modes collapse into ErrInvalidToken so callers cannot tell an
// expired token from a forged one; the underlying cause is logged for
// diagnostics only.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		if s.logger != nil {
			s.logger.Debug("Session token rejected", slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token verification failed")
	}

	claims, err := parseSessionClaims(token)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("Session token claims malformed", slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token claims malformed")
	}

	return claims, nil
}

// TTL returns the configured session token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func parseSessionClaims(token *jwt.Token) (*service.Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	userIDStr, ok := mapClaims["userId"].(string)
	if !ok {
		return nil, errors.New("userId claim missing")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.Wrap(err, "userId claim is not a valid uuid")
	}

	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, errors.New("email claim missing")
	}

	claims := &service.Claims{
		UserID: userID,
		Email:  email,
	}
	if exp, expErr := mapClaims.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, iatErr := mapClaims.GetIssuedAt(); iatErr == nil && iat != nil {
		claims.IssuedAt = iat
	}

	return claims, nil
}
