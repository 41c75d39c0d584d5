package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"intelhub/config"
)

// Mailer delivers rendered digests over SMTP. Construction fails fast when
// SMTP is not configured; callers should check config.SMTPConfigured first
// and keep the mailer nil to disable delivery.
type Mailer struct {
	client   *mail.Client
	fromAddr string
	fromName string
}

// New builds an SMTP client from the injected settings.
func New(cfg config.Config) (*Mailer, error) {
	if !cfg.SMTPConfigured() {
		return nil, fmt.Errorf("smtp is not configured")
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}

	return &Mailer{
		client:   client,
		fromAddr: cfg.SMTPUser,
		fromName: cfg.SMTPFromName,
	}, nil
}

// SendDigest mails one rendered digest as an HTML body.
func (m *Mailer) SendDigest(ctx context.Context, to, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.fromAddr); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.fromAddr, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
