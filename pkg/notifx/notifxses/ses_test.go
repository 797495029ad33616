package notifxses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx/notifxses"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSendEmail_BuildsInput(t *testing.T) {
	fake := &fakeSES{}
	provider := notifxses.NewSESProvider(fake, "noreply@example.com")

	err := provider.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"ann@example.com"},
		ReplyTo:  "bo@example.com",
		Subject:  "Project Proposal",
		TextBody: "Dear Ann,",
		HTMLBody: "<p>Dear Ann,</p>",
	}, notifx.WithTags(map[string]string{"email_type": "Thank You"}), notifx.WithConfigID("mailsmith"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := fake.input
	if aws.ToString(in.Source) != "noreply@example.com" {
		t.Fatalf("expected default source, got %s", aws.ToString(in.Source))
	}
	if aws.ToString(in.Message.Subject.Data) != "Project Proposal" {
		t.Fatalf("unexpected subject %s", aws.ToString(in.Message.Subject.Data))
	}
	if in.Message.Body.Text == nil || in.Message.Body.Html == nil {
		t.Fatal("expected text and html bodies")
	}
	if len(in.ReplyToAddresses) != 1 || aws.ToString(in.ConfigurationSetName) != "mailsmith" {
		t.Fatalf("unexpected reply-to or configuration set: %+v", in)
	}
	if len(in.Tags) != 1 || aws.ToString(in.Tags[0].Value) != "Thank_You" {
		t.Fatalf("expected sanitized tag, got %+v", in.Tags)
	}
}

func TestSendEmail_WrapsError(t *testing.T) {
	provider := notifxses.NewSESProvider(&fakeSES{err: errors.New("MessageRejected")}, "noreply@example.com")

	err := provider.SendEmail(context.Background(), notifx.EmailMessage{
		To:       []string{"ann@example.com"},
		Subject:  "Hi",
		TextBody: "body",
	})
	if !errx.HasCode(err, notifxses.ErrSendFailed) {
		t.Fatalf("expected send failed, got %v", err)
	}
}
