package mail

import (
	"context"
	"log/slog"
)

// noopMailer logs outgoing mail instead of sending it.
type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) SendPasswordReset(ctx context.Context, email string, resetLink string) error {
	m.logger.InfoContext(ctx, "password reset mail suppressed",
		slog.String("email", email),
		slog.String("resetLink", resetLink))

	return nil
}

func (m *noopMailer) SendInvitation(ctx context.Context, email string, resetLink string) error {
	m.logger.InfoContext(ctx, "invitation mail suppressed",
		slog.String("email", email),
		slog.String("resetLink", resetLink))

	return nil
}
