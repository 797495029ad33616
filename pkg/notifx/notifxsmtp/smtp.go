package notifxsmtp

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	mail "github.com/go-mail/mail"
)

// Dialer is the subset of mail.Dialer the provider uses.
type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// TLSMode is "starttls" (default), "ssl" or "none".
	TLSMode string
}

// SMTPProvider implements notifx.EmailSender over SMTP.
type SMTPProvider struct {
	dialer      Dialer
	fromAddress string
}

// NewSMTPProvider creates a provider that dials cfg.Host for every send.
func NewSMTPProvider(cfg Config, fromAddress string) *SMTPProvider {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	switch strings.ToLower(cfg.TLSMode) {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = nil
		d.StartTLSPolicy = mail.NoStartTLS
	}

	return NewSMTPProviderWithDialer(d, fromAddress)
}

// NewSMTPProviderWithDialer creates a provider around an existing dialer.
func NewSMTPProviderWithDialer(d Dialer, fromAddress string) *SMTPProvider {
	return &SMTPProvider{
		dialer:      d,
		fromAddress: fromAddress,
	}
}

// SendEmail sends a single email. Tags become X-Tag-* headers.
func (p *SMTPProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	if err := ctx.Err(); err != nil {
		return smtpErrors.NewWithCause(ErrSendFailed, err)
	}

	so := notifx.ApplySendOptions(opts)

	from := msg.From
	if from == "" {
		from = p.fromAddress
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	if len(msg.BCC) > 0 {
		m.SetHeader("Bcc", msg.BCC...)
	}
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)

	for k, v := range so.Tags {
		m.SetHeader(tagHeader(k), v)
	}

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return smtpErrors.NewWithCause(ErrSendFailed, err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}

	return nil
}

// tagHeader turns "email_type" into "X-Tag-Email-Type".
func tagHeader(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return "X-Tag-" + strings.Join(parts, "-")
}
