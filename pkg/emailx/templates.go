package emailx

import (
	"fmt"
	"regexp"
	"strings"
)

// Template fields
const (
	FieldRecipientName = "recipient_name"
	FieldSenderName    = "sender_name"
	FieldSubject       = "subject"
	FieldContext       = "context"
)

var (
	placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

	knownFields = map[string]bool{
		FieldRecipientName: true,
		FieldSenderName:    true,
		FieldSubject:       true,
		FieldContext:       true,
	}
)

// Template is a parameterized email body
type Template struct {
	EmailType EmailType
	Tone      Tone

	// NeutralContext replaces {context} when the request has none
	NeutralContext string

	text   string
	fields []string
}

type templateKey struct {
	emailType EmailType
	tone      Tone
}

// NewTemplate parses text and checks that every placeholder is a known field
func NewTemplate(emailType EmailType, tone Tone, text, neutralContext string) (Template, error) {
	var fields []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !knownFields[m[1]] {
			return Template{}, fmt.Errorf("template %s/%s: unknown placeholder {%s}", emailType, tone, m[1])
		}
		fields = append(fields, m[1])
	}

	return Template{
		EmailType:      emailType,
		Tone:           tone,
		NeutralContext: neutralContext,
		text:           text,
		fields:         fields,
	}, nil
}

// MustTemplate is NewTemplate that panics on error
func MustTemplate(emailType EmailType, tone Tone, text, neutralContext string) Template {
	t, err := NewTemplate(emailType, tone, text, neutralContext)
	if err != nil {
		panic(err)
	}
	return t
}

// Fields returns the placeholders in order of appearance
func (t Template) Fields() []string {
	return append([]string(nil), t.fields...)
}

// Text returns the raw template text
func (t Template) Text() string {
	return t.text
}

// Render substitutes values in a single pass. Substituted text is never
// scanned again, so user input containing braces is kept literally.
func (t Template) Render(values map[string]string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(t.text, func(ph string) string {
		name := ph[1 : len(ph)-1]
		v, ok := values[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})

	if missing != "" {
		return "", ErrRegistry.New(CodeTemplateField).
			WithDetail("field", missing).
			WithDetail("email_type", string(t.EmailType)).
			WithDetail("tone", string(t.Tone))
	}
	return out, nil
}

// RenderRequest fills t from req, using the neutral sentence for an empty
// context
func (t Template) RenderRequest(req Request) (string, error) {
	ctx := strings.TrimSpace(req.Context)
	if ctx == "" {
		ctx = t.NeutralContext
	}

	return t.Render(map[string]string{
		FieldRecipientName: req.RecipientName,
		FieldSenderName:    req.SenderName,
		FieldSubject:       req.Subject,
		FieldContext:       ctx,
	})
}

var library = map[templateKey]Template{}

func register(t Template) {
	library[templateKey{t.EmailType, t.Tone}] = t
}

func init() {
	register(MustTemplate(EmailTypeBusiness, ToneProfessional, `Dear {recipient_name},

I hope this email finds you well. I am writing to you regarding {subject}.

{context}

I believe this would be beneficial for both parties and would appreciate the opportunity to discuss this further.

Please let me know your thoughts and availability for a meeting.

Best regards,
{sender_name}`, "I wanted to reach out to discuss this matter with you."))

	register(MustTemplate(EmailTypeBusiness, ToneFriendly, `Hi {recipient_name},

I hope you're doing great! I wanted to reach out about {subject}.

{context}

I'd love to hear your thoughts on this and see if we can work something out together.

Looking forward to hearing from you!

Best,
{sender_name}`, "I thought this might be of interest to you."))

	register(MustTemplate(EmailTypePersonal, ToneFriendly, `Hey {recipient_name},

Hope you're doing well! I wanted to reach out about {subject}.

{context}

Let me know what you think!

Take care,
{sender_name}`, "I thought you might be interested in this."))

	register(MustTemplate(EmailTypePersonal, ToneCasual, `Hi {recipient_name},

How's it going? I wanted to tell you about {subject}.

{context}

Let me know if you want to chat about it!

Cheers,
{sender_name}`, "This is pretty cool and I thought you'd like to know about it."))

	register(MustTemplate(EmailTypeMarketing, TonePersuasive, `Dear {recipient_name},

I have exciting news about {subject}!

{context}

Don't wait - this offer is only available for a limited time!

Click here to learn more: [Your Link]

Best regards,
{sender_name}`, "This is an opportunity you won't want to miss."))

	register(MustTemplate(EmailTypeMarketing, ToneProfessional, `Dear {recipient_name},

I hope this email finds you well. I'm reaching out regarding {subject}.

{context}

This could be a great opportunity for you. Please let me know if you'd like to learn more.

Best regards,
{sender_name}`, "We have a special offer that might interest you."))

	register(MustTemplate(EmailTypeFollowUp, ToneProfessional, `Dear {recipient_name},

I hope you are well. I am following up on our previous conversation about {subject}.

{context}

I wanted to share where things stand and suggest next steps. Please let me know a time that works for you to continue the discussion.

Best regards,
{sender_name}`, "I wanted to check in and see whether you had any further thoughts."))

	register(MustTemplate(EmailTypeThankYou, ToneProfessional, `Dear {recipient_name},

Thank you for {subject}.

{context}

I truly appreciate your time and support, and I look forward to working with you again.

With gratitude,
{sender_name}`, "Your help made a real difference."))

	register(MustTemplate(EmailTypeThankYou, ToneFriendly, `Hi {recipient_name},

Thanks so much for {subject}!

{context}

It really meant a lot to me. Let's catch up soon!

Warmly,
{sender_name}`, "I really appreciate it."))
}

// Lookup resolves the template for (emailType, tone): the exact pair, then
// the type's Professional variant, then Business/Professional. Inputs are
// normalized so Lookup is total.
func Lookup(emailType EmailType, tone Tone) Template {
	n := Request{EmailType: emailType, Tone: tone}.Normalized()

	if t, ok := library[templateKey{n.EmailType, n.Tone}]; ok {
		return t
	}
	if t, ok := library[templateKey{n.EmailType, ToneProfessional}]; ok {
		return t
	}
	return library[templateKey{DefaultEmailType, DefaultTone}]
}

// Templates returns every registered template
func Templates() []Template {
	out := make([]Template, 0, len(library))
	for _, et := range emailTypes {
		for _, tn := range tones {
			if t, ok := library[templateKey{et, tn}]; ok {
				out = append(out, t)
			}
		}
	}
	return out
}
