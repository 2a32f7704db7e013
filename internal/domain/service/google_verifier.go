package service

import "context"

// GoogleIdentity carries the identity claims of a verified Google ID token.
type GoogleIdentity struct {
	Sub           string // Google's stable account identifier.
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// GoogleVerifier validates Google ID tokens presented during sign-in.
type GoogleVerifier interface {
	// VerifyIDToken checks the token's issuer, audience, expiry and email
	// verification status and returns its identity claims.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}
