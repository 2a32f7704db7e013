// Package google verifies Google ID tokens for the sign-in flow.
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"scribe/config"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
)

// idTokenClaims represents the claims in a Google ID token.
type idTokenClaims struct {
	Iss           string `json:"iss"`
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Exp           int64  `json:"exp"`
	Iat           int64  `json:"iat"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type verifier struct {
	clientID string
	logger   *slog.Logger
}

// NewVerifier creates a Google ID token verifier bound to the configured
// client ID.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.GoogleVerifier {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &verifier{clientID: clientID, logger: logger}
}

// VerifyIDToken implements service.GoogleVerifier.
func (v *verifier) VerifyIDToken(_ context.Context, idToken string) (*service.GoogleIdentity, error) {
	claims, err := parseIDToken(idToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ID token")
	}

	if err := v.verifyClaims(claims); err != nil {
		v.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	return &service.GoogleIdentity{
		Sub:           claims.Sub,
		Email:         claims.Email,
		Name:          claims.Name,
		AvatarURL:     claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

func (v *verifier) verifyClaims(claims *idTokenClaims) error {
	if claims.Iss != "https://accounts.google.com" && claims.Iss != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", claims.Iss)
	}
	if v.clientID == "" {
		return errors.New("google sign-in is not configured")
	}
	if claims.Aud != v.clientID {
		return errors.Errorf("invalid audience: expected %s, got %s", v.clientID, claims.Aud)
	}
	if claims.Exp < time.Now().Unix() {
		return errors.New("token expired")
	}
	if !claims.EmailVerified {
		return errors.New("email not verified")
	}

	return nil
}

// parseIDToken extracts the claims from the token's payload segment.
func parseIDToken(token string) (*idTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims idTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}

	return &claims, nil
}
