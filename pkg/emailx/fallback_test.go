package emailx_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/emailx"
)

func TestGenerate_ShortKeepsGreetingAndSignOff(t *testing.T) {
	for _, tmpl := range emailx.Templates() {
		req := emailx.Request{
			RecipientName: "Sarah Johnson",
			SenderName:    "Mike Wilson",
			Subject:       "Coffee Chat",
			Context:       "Would love to catch up",
			EmailType:     tmpl.EmailType,
			Tone:          tmpl.Tone,
			Length:        emailx.LengthShort,
		}

		body, err := emailx.Generate(req)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", tmpl.EmailType, tmpl.Tone, err)
		}

		lines := strings.Split(body, "\n")
		if len(lines) > emailx.MaxShortLines {
			t.Errorf("%s/%s: %d lines, want at most %d", tmpl.EmailType, tmpl.Tone, len(lines), emailx.MaxShortLines)
		}
		if !strings.Contains(lines[0], "Sarah Johnson") {
			t.Errorf("%s/%s: greeting lost: %q", tmpl.EmailType, tmpl.Tone, lines[0])
		}
		if lines[len(lines)-1] != "Mike Wilson" {
			t.Errorf("%s/%s: sign-off lost: %q", tmpl.EmailType, tmpl.Tone, lines[len(lines)-1])
		}
	}
}

func TestGenerate_ShortBusinessProfessional(t *testing.T) {
	req := sampleRequest()
	req.Length = emailx.LengthShort

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Dear John Smith,\n\n" +
		"I hope this email finds you well. I am writing to you regarding Project Proposal.\n\n" +
		"Following up on our meeting\n\n" +
		"Best regards,\nJane Doe"
	if body != want {
		t.Fatalf("unexpected short body:\n%s", body)
	}
}

func TestGenerate_MediumIsSubstitutedTemplate(t *testing.T) {
	req := sampleRequest()

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := emailx.Lookup(req.EmailType, req.Tone).RenderRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != want {
		t.Fatalf("medium should not change the template:\n%s", body)
	}
}

func TestGenerate_LongAppendsAdditionalInformation(t *testing.T) {
	req := sampleRequest()
	req.Length = emailx.LengthLong

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	medium, _ := emailx.Generate(sampleRequest())
	if !strings.HasPrefix(body, medium) {
		t.Fatal("long body should start with the medium body")
	}
	if !strings.Contains(body, "Additional Information:") {
		t.Fatal("missing Additional Information block")
	}
	if !strings.HasSuffix(body, "Thank you for your time and consideration.") {
		t.Fatalf("unexpected ending:\n%s", body)
	}
}

func TestGenerate_EmptyContextUsesNeutralSentence(t *testing.T) {
	req := sampleRequest()
	req.Context = "   "

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(body, "I wanted to reach out to discuss this matter with you.") {
		t.Fatalf("expected neutral context sentence:\n%s", body)
	}
	if strings.Contains(body, "{") || strings.Contains(body, "\n\n\n") {
		t.Fatalf("placeholder or blank line leaked:\n%s", body)
	}
}

func TestGenerate_UserTextIsNotReexpanded(t *testing.T) {
	req := sampleRequest()
	req.Context = "Literal {sender_name} stays"

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "Literal {sender_name} stays") {
		t.Fatalf("context was re-expanded:\n%s", body)
	}
}

func TestGenerate_UnknownSelectorsUseDefaults(t *testing.T) {
	req := sampleRequest()
	req.EmailType = "Newsletter"
	req.Tone = "Sarcastic"
	req.Length = "Epic"

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := emailx.Generate(sampleRequest())
	if body != want {
		t.Fatalf("expected Business/Professional/Medium output:\n%s", body)
	}
}

func TestGenerate_SelectorsIgnoreCase(t *testing.T) {
	req := sampleRequest()
	req.EmailType = " marketing "
	req.Tone = "PERSUASIVE"

	body, err := emailx.Generate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "I have exciting news about Project Proposal!") {
		t.Fatalf("expected Marketing/Persuasive template:\n%s", body)
	}
}
