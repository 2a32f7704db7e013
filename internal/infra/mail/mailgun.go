// Package mail delivers transactional email through Mailgun.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"scribe/config"
	"scribe/internal/domain/service"
)

const sendTimeout = 30 * time.Second

type mailgunMailer struct {
	client *mailgun.MailgunImpl
	sender string
	logger *slog.Logger
}

// NewMailer creates a Mailer backed by Mailgun. When the mail section is
// missing or incomplete, a logging no-op mailer is returned so local
// development works without credentials.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.Mail == nil || cfg.Mail.Domain == "" || cfg.Mail.APIKey == "" {
		logger.Warn("mailgun not configured, outgoing mail will be logged only")

		return &noopMailer{logger: logger}
	}

	sender := cfg.Mail.Sender
	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", cfg.Mail.Domain)
	}

	return &mailgunMailer{
		client: mailgun.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey),
		sender: sender,
		logger: logger,
	}
}

func (m *mailgunMailer) SendPasswordReset(ctx context.Context, email string, resetLink string) error {
	body := fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below to choose a new one. The link expires in one hour.\n\n%s\n\n"+
			"If you did not request this, you can safely ignore this message.",
		resetLink,
	)

	return m.send(ctx, email, "Reset your password", body)
}

func (m *mailgunMailer) SendInvitation(ctx context.Context, email string, resetLink string) error {
	body := fmt.Sprintf(
		"An account has been created for you.\n\n"+
			"Open the link below within 24 hours to set your password and sign in.\n\n%s",
		resetLink,
	)

	return m.send(ctx, email, "You have been invited", body)
}

func (m *mailgunMailer) send(ctx context.Context, recipient, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := m.client.NewMessage(m.sender, subject, body)
	if err := message.AddRecipient(recipient); err != nil {
		return err
	}

	_, id, err := m.client.Send(ctx, message)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to send email",
			slog.String("subject", subject),
			slog.Any("error", err))

		return err
	}

	m.logger.InfoContext(ctx, "email queued",
		slog.String("subject", subject),
		slog.String("messageId", id))

	return nil
}
