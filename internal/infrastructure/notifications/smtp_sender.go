package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/slotbook/backend/internal/domain/providers"
	"github.com/slotbook/backend/pkg/config"
	apperrors "github.com/slotbook/backend/pkg/errors"
)

// SMTPSender delivers plain-text email via unauthenticated SMTP
// (local relay / Mailpit-compatible).
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a new SMTP mail sender.
func NewSMTPSender(cfg *config.SMTPConfig) providers.MailProvider {
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "noreply@slotbook.local"
	}
	return &SMTPSender{
		addr: cfg.SMTPAddr(),
		from: from,
	}
}

// Send delivers a plain-text email. The context is honored only up to
// connection setup; net/smtp does not support mid-send cancellation.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, nil, envelopeAddress(s.from), []string{envelopeAddress(to)}, []byte(msg)); err != nil {
		return apperrors.NewMailDeliveryError(fmt.Sprintf("failed to send mail to %s", to), err)
	}
	return nil
}

// buildMessage assembles a minimal RFC 5322 message.
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

// envelopeAddress strips an RFC 5322 display name, leaving the bare
// address for the SMTP envelope.
func envelopeAddress(addr string) string {
	if start := strings.Index(addr, "<"); start >= 0 {
		if end := strings.Index(addr[start:], ">"); end > 0 {
			return addr[start+1 : start+end]
		}
	}
	return strings.TrimSpace(addr)
}
