package service

import (
	"time"

	"scribe/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims defines the custom claims carried by signed access tokens.
type AccessClaims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for the two credential kinds of the system:
// short-lived signed access tokens and opaque bearer secrets (refresh and reset
// tokens), whose validity lives entirely in the store.
type TokenService interface {
	// GenerateAccessToken creates a signed access token embedding the user's
	// identity, issued-at and expiry claims.
	GenerateAccessToken(userID uuid.UUID, email string, role entity.Role) (string, error)

	// ValidateAccessToken checks a token's signature, shape and expiry. All
	// failure modes collapse into the single invalid-token error so callers
	// cannot be used as a verification oracle.
	ValidateAccessToken(tokenString string) (*AccessClaims, error)

	// NewRefreshToken returns a new opaque URL-safe refresh token of at least
	// 64 characters, drawn from a CSPRNG.
	NewRefreshToken() (string, error)

	// NewResetToken returns a new opaque URL-safe password-reset token of at
	// least 32 characters, drawn from a CSPRNG.
	NewResetToken() (string, error)

	// HashToken returns the hex-encoded SHA-256 hash of an opaque token, the
	// only form in which bearer secrets are persisted.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured lifetime of refresh tokens.
	RefreshTokenDuration() time.Duration

	// ResetTokenDuration returns the lifetime of reset tokens issued by the
	// forgot-password flow.
	ResetTokenDuration() time.Duration

	// InviteTokenDuration returns the lifetime of reset tokens issued when an
	// admin creates an account.
	InviteTokenDuration() time.Duration
}
