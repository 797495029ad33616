package notifxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/logx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
)

// ConsoleProvider prints emails through logx. Intended for development and testing.
type ConsoleProvider struct {
	logger *logx.Logger
}

// NewConsoleProvider creates a console provider. A nil logger uses the
// default logger.
func NewConsoleProvider(logger *logx.Logger) *ConsoleProvider {
	if logger == nil {
		logger = logx.GetDefaultLogger()
	}
	return &ConsoleProvider{logger: logger}
}

// SendEmail logs the email details instead of sending it.
func (p *ConsoleProvider) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	so := notifx.ApplySendOptions(opts)

	fields := logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}
	for k, v := range so.Tags {
		fields["tag."+k] = v
	}
	p.logger.WithFields(fields).Info("notifx/console: email sent (dev mode)")

	if msg.TextBody != "" {
		p.logger.WithField("body", msg.TextBody).Debug("notifx/console: text body")
	}
	if msg.HTMLBody != "" {
		p.logger.WithField("body", msg.HTMLBody).Debug("notifx/console: html body")
	}

	return nil
}
