package emailx

import "strings"

// EmailType selects the purpose of an email
type EmailType string

const (
	EmailTypeBusiness  EmailType = "Business"
	EmailTypePersonal  EmailType = "Personal"
	EmailTypeMarketing EmailType = "Marketing"
	EmailTypeFollowUp  EmailType = "Follow-up"
	EmailTypeThankYou  EmailType = "Thank You"
)

// Tone selects the register of an email
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneFormal       Tone = "Formal"
	ToneCasual       Tone = "Casual"
	TonePersuasive   Tone = "Persuasive"
)

// Length selects the target size of an email
type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

// Defaults applied to unrecognized selector values
const (
	DefaultEmailType = EmailTypeBusiness
	DefaultTone      = ToneProfessional
	DefaultLength    = LengthMedium
)

var (
	emailTypes = []EmailType{EmailTypeBusiness, EmailTypePersonal, EmailTypeMarketing, EmailTypeFollowUp, EmailTypeThankYou}
	tones      = []Tone{ToneProfessional, ToneFriendly, ToneFormal, ToneCasual, TonePersuasive}
	lengths    = []Length{LengthShort, LengthMedium, LengthLong}
)

// Source reports which path produced a Result
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Request is one email to generate
type Request struct {
	RecipientName string    `json:"recipient_name"`
	SenderName    string    `json:"sender_name"`
	Subject       string    `json:"subject"`
	Context       string    `json:"context"`
	EmailType     EmailType `json:"email_type"`
	Tone          Tone      `json:"tone"`
	Length        Length    `json:"length"`
}

// Result is a generated email
type Result struct {
	Subject   string `json:"subject"`
	Body      string `json:"email"`
	WordCount int    `json:"word_count"`
	Source    Source `json:"-"`
}

// StyleOptions lists every accepted selector value
type StyleOptions struct {
	EmailTypes []string `json:"email_types"`
	Tones      []string `json:"tones"`
	Lengths    []string `json:"lengths"`
}

// ParseEmailType matches s against the known types ignoring case and
// surrounding whitespace
func ParseEmailType(s string) (EmailType, bool) {
	return match(emailTypes, s)
}

// ParseTone matches s against the known tones
func ParseTone(s string) (Tone, bool) {
	return match(tones, s)
}

// ParseLength matches s against the known lengths
func ParseLength(s string) (Length, bool) {
	return match(lengths, s)
}

func match[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Normalized returns a copy of r with every selector mapped to its
// canonical value. Unknown or empty selectors take the defaults.
func (r Request) Normalized() Request {
	out := r

	if t, ok := ParseEmailType(string(r.EmailType)); ok {
		out.EmailType = t
	} else {
		out.EmailType = DefaultEmailType
	}

	if t, ok := ParseTone(string(r.Tone)); ok {
		out.Tone = t
	} else {
		out.Tone = DefaultTone
	}

	if l, ok := ParseLength(string(r.Length)); ok {
		out.Length = l
	} else {
		out.Length = DefaultLength
	}

	return out
}

// Validate reports missing display fields. Selectors are never rejected.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.RecipientName) == "" {
		missing = append(missing, "recipient_name")
	}
	if strings.TrimSpace(r.SenderName) == "" {
		missing = append(missing, "sender_name")
	}
	if strings.TrimSpace(r.Subject) == "" {
		missing = append(missing, "subject")
	}

	if len(missing) > 0 {
		return ErrRegistry.New(CodeInvalidRequest).
			WithDetail("missing_fields", missing)
	}
	return nil
}

// StyleOptionsList returns the accepted selector values in display order
func StyleOptionsList() StyleOptions {
	opts := StyleOptions{
		EmailTypes: make([]string, 0, len(emailTypes)),
		Tones:      make([]string, 0, len(tones)),
		Lengths:    make([]string, 0, len(lengths)),
	}
	for _, t := range emailTypes {
		opts.EmailTypes = append(opts.EmailTypes, string(t))
	}
	for _, t := range tones {
		opts.Tones = append(opts.Tones, string(t))
	}
	for _, l := range lengths {
		opts.Lengths = append(opts.Lengths, string(l))
	}
	return opts
}

// countWords counts whitespace-separated tokens
func countWords(body string) int {
	return len(strings.Fields(body))
}
