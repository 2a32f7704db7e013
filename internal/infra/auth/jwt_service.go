// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"scribe/config"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/service"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
	defaultResetTTL   = time.Hour
	defaultInviteTTL  = 24 * time.Hour

	// Random byte counts chosen so the base64url form meets the minimum token
	// lengths: 48 bytes -> 64 chars (refresh), 24 bytes -> 32 chars (reset).
	refreshTokenBytes = 48
	resetTokenBytes   = 24
)

// jwtService implements the TokenService interface: JWT for access tokens,
// CSPRNG-generated opaque strings for refresh and reset tokens.
type jwtService struct {
	accessSecret string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	resetTTL     time.Duration
	inviteTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	svc := &jwtService{
		accessSecret: cfg.SecretKey.Access,
		accessTTL:    defaultAccessTTL,
		refreshTTL:   defaultRefreshTTL,
		resetTTL:     defaultResetTTL,
		inviteTTL:    defaultInviteTTL,
	}

	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
		if cfg.Auth.ResetTokenTTL > 0 {
			svc.resetTTL = cfg.Auth.ResetTokenTTL
		}
		if cfg.Auth.InviteTokenTTL > 0 {
			svc.inviteTTL = cfg.Auth.InviteTokenTTL
		}
	}

	return svc, nil
}

// GenerateAccessToken creates a signed access token carrying the user's identity.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID, email string, role entity.Role) (string, error) {
	now := time.Now()
	claims := &service.AccessClaims{
		UserID: userID,
		Email:  email,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.accessSecret))
}

// ValidateAccessToken checks the signature, shape and expiry of an access token.
// Malformed, tampered and expired tokens all fail identically so the endpoint
// cannot be used to probe which condition occurred.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.accessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	return claims, nil
}

// NewRefreshToken returns a 64-character opaque URL-safe bearer secret.
func (s *jwtService) NewRefreshToken() (string, error) {
	return randomToken(refreshTokenBytes)
}

// NewResetToken returns a 32-character opaque URL-safe bearer secret.
func (s *jwtService) NewResetToken() (string, error) {
	return randomToken(resetTokenBytes)
}

// HashToken returns the hex-encoded SHA-256 hash of an opaque token for storage.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RefreshTokenDuration returns the configured lifetime of refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// ResetTokenDuration returns the lifetime of forgot-password reset tokens.
func (s *jwtService) ResetTokenDuration() time.Duration {
	return s.resetTTL
}

// InviteTokenDuration returns the lifetime of admin-invitation reset tokens.
func (s *jwtService) InviteTokenDuration() time.Duration {
	return s.inviteTTL
}

func randomToken(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
