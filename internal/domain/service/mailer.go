package service

import "context"

// Mailer defines the interface for transactional email delivery. Implementations
// must not leak whether a recipient address exists; failures are logged by the
// caller and never surfaced to the requester of enumeration-sensitive flows.
type Mailer interface {
	// SendPasswordReset sends a password-reset link to the given address.
	SendPasswordReset(ctx context.Context, email, resetLink string) error

	// SendInvitation sends an account-invitation mail with a first-time
	// password-setup link.
	SendInvitation(ctx context.Context, email, resetLink string) error
}
