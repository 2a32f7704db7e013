// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"scribe/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries the identity claims extracted from a verified
// Google ID token.
type GoogleLoginInput struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL string
}

// RefreshInput carries the opaque refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session to terminate.
type LogoutInput struct {
	RefreshToken string
}

// ForgotPasswordInput identifies the account requesting a password reset.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput carries a reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// AuthOutput returns the token pair and user issued by a successful
// registration, login or refresh.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates an account with a password credential and logs it in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies an email/password pair and issues a token pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GoogleLogin logs in via a linked Google account, linking or creating the
	// account as needed.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token itself is left untouched and remains valid until expiry.
	Refresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error)

	// Logout terminates the session of the given refresh token. Unknown tokens
	// are ignored so logout is idempotent.
	Logout(ctx context.Context, input *LogoutInput) error

	// ForgotPassword issues a reset token and mails a reset link. The outcome
	// is identical whether or not the email maps to an account.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error

	// ResetPassword consumes a reset token, replaces the password and revokes
	// every active session of the account.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
