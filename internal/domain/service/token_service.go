package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are stateless bearer credentials: possession implies authorization to
// act as the embedded user until expiry. Nothing is stored server-side.
type TokenService interface {
	// Issue creates a signed session token over the user's identity,
	// expiring TTL() after the current wall-clock time.
	Issue(userID uuid.UUID, email string) (string, error)

	// Verify checks the token's signature and expiry and returns its claims.
	// Every failure mode (bad signature, malformed structure, expired token)
	// surfaces as the same invalid-token error.
	Verify(tokenString string) (*Claims, error)

	// TTL returns the configured session token lifetime.
	TTL() time.Duration
}
