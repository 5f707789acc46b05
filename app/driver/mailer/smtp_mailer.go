package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"willvault-auth/app/config"
	"willvault-auth/app/port"

	"github.com/wneessen/go-mail"
)

// SMTPMailer implements port.EmailSender over SMTP
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer creates an SMTP-backed email sender
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (port.EmailSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	logger.Info("smtp mailer initialized", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "from", cfg.SMTPFrom)

	return &SMTPMailer{
		client: client,
		from:   cfg.SMTPFrom,
		logger: logger.With("component", "smtp_mailer"),
	}, nil
}

// Send delivers a single HTML email
func (m *SMTPMailer) Send(ctx context.Context, to, subject, bodyHTML string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, bodyHTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "smtp send failed", "to", to, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.InfoContext(ctx, "email dispatched", "to", to, "subject", subject)
	return nil
}
