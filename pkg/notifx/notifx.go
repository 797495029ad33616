package notifx

import (
	"context"
	"strings"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// Client is the main entry point for sending notifications.
type Client struct {
	provider  EmailSender
	templates *TemplateRegistry
	from      string
}

// NewClient creates a new notification client. from is used when a
// message names no sender.
func NewClient(provider EmailSender, from string) *Client {
	return &Client{
		provider:  provider,
		templates: NewTemplateRegistry(),
		from:      from,
	}
}

// SendEmail validates msg and sends it through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if c.provider == nil {
		return NoProviderError()
	}
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	for _, to := range msg.To {
		if !strings.Contains(to, "@") {
			return notifxErrors.New(ErrInvalidMessage).
				WithDetail("reason", "invalid recipient").
				WithDetail("to", to)
		}
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty body")
	}
	if msg.From == "" {
		msg.From = c.from
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// RegisterTemplate parses and stores a named template for later use.
func (c *Client) RegisterTemplate(name, tmplString string) error {
	return c.templates.Register(name, tmplString)
}

// SendTemplatedEmail renders a template into the HTML body and sends the
// resulting email. A text body already set on msg is kept.
func (c *Client) SendTemplatedEmail(ctx context.Context, templateName string, data any, msg EmailMessage, opts ...Option) error {
	body, err := c.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	msg.HTMLBody = body
	return c.SendEmail(ctx, msg, opts...)
}
