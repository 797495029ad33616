package emailx_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/emailx"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
)

func TestLookup_FallbackChain(t *testing.T) {
	cases := []struct {
		emailType emailx.EmailType
		tone      emailx.Tone
		wantType  emailx.EmailType
		wantTone  emailx.Tone
	}{
		{emailx.EmailTypePersonal, emailx.ToneCasual, emailx.EmailTypePersonal, emailx.ToneCasual},
		{emailx.EmailTypeFollowUp, emailx.ToneCasual, emailx.EmailTypeFollowUp, emailx.ToneProfessional},
		{emailx.EmailTypeMarketing, emailx.ToneFormal, emailx.EmailTypeMarketing, emailx.ToneProfessional},
		{emailx.EmailTypePersonal, emailx.ToneFormal, emailx.EmailTypeBusiness, emailx.ToneProfessional},
		{"Unknown", "Unknown", emailx.EmailTypeBusiness, emailx.ToneProfessional},
	}

	for _, tc := range cases {
		got := emailx.Lookup(tc.emailType, tc.tone)
		if got.EmailType != tc.wantType || got.Tone != tc.wantTone {
			t.Errorf("Lookup(%s, %s) = %s/%s, want %s/%s",
				tc.emailType, tc.tone, got.EmailType, got.Tone, tc.wantType, tc.wantTone)
		}
	}
}

func TestTemplates_UseOnlyKnownFields(t *testing.T) {
	templates := emailx.Templates()
	if len(templates) != 9 {
		t.Fatalf("expected 9 templates, got %d", len(templates))
	}

	for _, tmpl := range templates {
		if tmpl.NeutralContext == "" {
			t.Errorf("%s/%s: missing neutral context", tmpl.EmailType, tmpl.Tone)
		}
		fields := strings.Join(tmpl.Fields(), ",")
		for _, f := range []string{emailx.FieldRecipientName, emailx.FieldSenderName, emailx.FieldSubject, emailx.FieldContext} {
			if !strings.Contains(fields, f) {
				t.Errorf("%s/%s: field %s not used", tmpl.EmailType, tmpl.Tone, f)
			}
		}
	}
}

func TestNewTemplate_RejectsUnknownPlaceholder(t *testing.T) {
	_, err := emailx.NewTemplate(emailx.EmailTypeBusiness, emailx.ToneFormal, "Dear {recipient}", "")
	if err == nil {
		t.Fatal("expected error for unknown placeholder")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustTemplate should panic")
		}
	}()
	emailx.MustTemplate(emailx.EmailTypeBusiness, emailx.ToneFormal, "Hi {nickname}", "")
}

func TestRender_MissingValue(t *testing.T) {
	tmpl := emailx.MustTemplate(emailx.EmailTypeBusiness, emailx.ToneFormal, "Dear {recipient_name}, re {subject}", "")

	_, err := tmpl.Render(map[string]string{emailx.FieldRecipientName: "Ann"})
	if !errx.HasCode(err, emailx.CodeTemplateField) {
		t.Fatalf("expected template field error, got %v", err)
	}
}
