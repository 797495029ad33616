package notifxsmtp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx/notifxsmtp"
	mail "github.com/go-mail/mail"
)

type fakeDialer struct {
	sent []*mail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func header(m *mail.Message, field string) string {
	values := m.GetHeader(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func TestSendEmail_BuildsMessage(t *testing.T) {
	fake := &fakeDialer{}
	provider := notifxsmtp.NewSMTPProviderWithDialer(fake, "Mailsmith <noreply@example.com>")

	err := provider.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"ann@example.com", "bo@example.com"},
		ReplyTo:  "sarah@example.com",
		Subject:  "Weekend Plans",
		TextBody: "Hi Ann,",
		HTMLBody: "<p>Hi Ann,</p>",
	}, notifx.WithTags(map[string]string{"email_type": "Personal"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(fake.sent))
	}
	m := fake.sent[0]

	if got := header(m, "From"); got != "Mailsmith <noreply@example.com>" {
		t.Fatalf("expected default from, got %q", got)
	}
	if got := m.GetHeader("To"); len(got) != 2 {
		t.Fatalf("expected two recipients, got %v", got)
	}
	if got := header(m, "Subject"); got != "Weekend Plans" {
		t.Fatalf("unexpected subject %q", got)
	}
	if got := header(m, "Reply-To"); got != "sarah@example.com" {
		t.Fatalf("unexpected reply-to %q", got)
	}
	if got := header(m, "X-Tag-Email-Type"); got != "Personal" {
		t.Fatalf("expected tag header, got %q", got)
	}
}

func TestSendEmail_ExplicitFrom(t *testing.T) {
	fake := &fakeDialer{}
	provider := notifxsmtp.NewSMTPProviderWithDialer(fake, "noreply@example.com")

	err := provider.SendEmail(context.Background(), notifx.EmailMessage{
		From:     "sarah@example.com",
		To:       []string{"ann@example.com"},
		Subject:  "Hello",
		TextBody: "Hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := header(fake.sent[0], "From"); got != "sarah@example.com" {
		t.Fatalf("expected explicit from, got %q", got)
	}
}

func TestSendEmail_Failure(t *testing.T) {
	provider := notifxsmtp.NewSMTPProviderWithDialer(&fakeDialer{err: errors.New("connection refused")}, "noreply@example.com")

	err := provider.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"ann@example.com"},
		Subject:  "Hello",
		TextBody: "Hi",
	})
	if !errx.HasCode(err, notifxsmtp.ErrSendFailed) {
		t.Fatalf("expected send failed error, got %v", err)
	}
}

func TestSendEmail_CanceledContext(t *testing.T) {
	fake := &fakeDialer{}
	provider := notifxsmtp.NewSMTPProviderWithDialer(fake, "noreply@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := provider.SendEmail(ctx, notifx.EmailMessage{
		To:       []string{"ann@example.com"},
		Subject:  "Hello",
		TextBody: "Hi",
	})
	if !errx.HasCode(err, notifxsmtp.ErrSendFailed) {
		t.Fatalf("expected send failed error, got %v", err)
	}
	if len(fake.sent) != 0 {
		t.Fatal("dialer should not be called with a canceled context")
	}
}
