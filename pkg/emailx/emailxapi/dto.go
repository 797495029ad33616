package emailxapi

import "github.com/Abraxas-365/mailsmith/pkg/emailx"

// GenerateEmailRequest is the body of POST /generate-email
type GenerateEmailRequest struct {
	RecipientName string `json:"recipient_name"`
	SenderName    string `json:"sender_name"`
	Subject       string `json:"subject"`
	Context       string `json:"context"`
	EmailType     string `json:"email_type"`
	Tone          string `json:"tone"`
	Length        string `json:"length"`
}

// ToRequest maps the body onto an engine request
func (r GenerateEmailRequest) ToRequest() emailx.Request {
	return emailx.Request{
		RecipientName: r.RecipientName,
		SenderName:    r.SenderName,
		Subject:       r.Subject,
		Context:       r.Context,
		EmailType:     emailx.EmailType(r.EmailType),
		Tone:          emailx.Tone(r.Tone),
		Length:        emailx.Length(r.Length),
	}
}

// GenerateEmailResponse is the generated email
type GenerateEmailResponse struct {
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	WordCount int    `json:"word_count"`
}

func newGenerateEmailResponse(res emailx.Result) GenerateEmailResponse {
	return GenerateEmailResponse{
		Subject:   res.Subject,
		Email:     res.Body,
		WordCount: res.WordCount,
	}
}

// BatchRequest is the body of POST /generate-emails
type BatchRequest struct {
	Requests []GenerateEmailRequest `json:"requests"`
}

// BatchResponse lists results in request order
type BatchResponse struct {
	Results []GenerateEmailResponse `json:"results"`
}

// SendEmailRequest is the body of POST /send-email
type SendEmailRequest struct {
	GenerateEmailRequest
	To   []string `json:"to"`
	From string   `json:"from"`
}

// SendEmailResponse reports a delivered email
type SendEmailResponse struct {
	GenerateEmailResponse
	To   []string `json:"to"`
	Sent bool     `json:"sent"`
}
