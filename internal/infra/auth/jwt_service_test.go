package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/config"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
)

func newTestTokenService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{Access: "test-secret-key"},
	})
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestNewJWTService_ConfiguredTTLs(t *testing.T) {
	svc, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKey{Access: "test-secret-key"},
		Auth: &config.AuthConfig{
			AccessTokenTTL:  5 * time.Minute,
			RefreshTokenTTL: 48 * time.Hour,
			ResetTokenTTL:   30 * time.Minute,
			InviteTokenTTL:  12 * time.Hour,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, svc.RefreshTokenDuration())
	assert.Equal(t, 30*time.Minute, svc.ResetTokenDuration())
	assert.Equal(t, 12*time.Hour, svc.InviteTokenDuration())
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "reader@example.com", entity.RoleAuthor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "author", claims.Role)
}

func TestValidateAccessToken_Failures(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	valid, err := svc.GenerateAccessToken(userID, "reader@example.com", entity.RoleReader)
	require.NoError(t, err)

	otherSecret := &jwtService{accessSecret: "another-secret", accessTTL: time.Minute}
	tampered, err := otherSecret.GenerateAccessToken(userID, "reader@example.com", entity.RoleReader)
	require.NoError(t, err)

	expiredSvc := &jwtService{accessSecret: "test-secret-key", accessTTL: -time.Minute}
	expired, err := expiredSvc.GenerateAccessToken(userID, "reader@example.com", entity.RoleReader)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "wrong signature", token: tampered},
		{name: "expired", token: expired},
		{name: "truncated", token: valid[:len(valid)-4]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(tc.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
		})
	}
}

func TestValidateAccessToken_RejectsAlgNone(t *testing.T) {
	svc := newTestTokenService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestNewRefreshToken(t *testing.T) {
	svc := newTestTokenService(t)

	first, err := svc.NewRefreshToken()
	require.NoError(t, err)
	second, err := svc.NewRefreshToken()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(first), 64)
	assert.NotEqual(t, first, second)
	assert.False(t, strings.ContainsAny(first, "+/="), "token must be URL-safe")
}

func TestNewResetToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.NewResetToken()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(token), 32)
}

func TestHashToken(t *testing.T) {
	svc := newTestTokenService(t)

	hash := svc.HashToken("some-refresh-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, svc.HashToken("another-token"))
	assert.NotContains(t, hash, "some-refresh-token")
}
