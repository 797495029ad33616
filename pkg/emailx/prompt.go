package emailx

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a professional email writing assistant with expertise in creating " +
	"personalized, engaging, and effective emails. You understand various business contexts, " +
	"communication styles, and can adapt your writing to different audiences and purposes. " +
	"Your emails are always well-structured, grammatically correct, and appropriate for the given context."

const noContext = "None provided."

// Prompt is the instruction pair sent to a remote backend
type Prompt struct {
	System string
	User   string
}

// Compose builds the prompt for req. Selectors are normalized first so the
// instruction fragments are always present.
func Compose(req Request) Prompt {
	req = req.Normalized()

	details := strings.TrimSpace(req.Context)
	if details == "" {
		details = noContext
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s %s email with the following details:\n\n", req.Tone, req.EmailType)
	fmt.Fprintf(&b, "Recipient: %s\n", req.RecipientName)
	fmt.Fprintf(&b, "Sender: %s\n", req.SenderName)
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Context: %s\n\n", details)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Tone: %s\n", req.Tone)
	fmt.Fprintf(&b, "- Length: %s\n", req.Length)
	b.WriteString("- Make it personalized and engaging\n")
	b.WriteString("- Use proper email formatting\n")
	b.WriteString("- Include appropriate greeting and closing\n")
	b.WriteString("- Ensure the content is relevant to the context provided\n\n")
	b.WriteString("Please generate a complete email that is ready to send.\n\n")

	b.WriteString("Specific Instructions:\n")
	fmt.Fprintf(&b, "- %s\n", InstructionFor(CategoryLength, string(req.Length)))
	fmt.Fprintf(&b, "- %s\n", InstructionFor(CategoryTone, string(req.Tone)))
	fmt.Fprintf(&b, "- %s\n", InstructionFor(CategoryEmailType, string(req.EmailType)))

	return Prompt{System: systemPrompt, User: b.String()}
}
