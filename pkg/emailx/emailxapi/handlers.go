package emailxapi

import (
	"fmt"

	"github.com/Abraxas-365/mailsmith/pkg/emailx"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	"github.com/gofiber/fiber/v2"
)

// MaxBatchSize bounds POST /generate-emails
const MaxBatchSize = 20

// LayoutTemplate names the HTML layout used for delivered emails
const LayoutTemplate = "generated_email"

const layout = `<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; line-height: 1.5;">
{{- range paragraphs .}}
<p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- end}}
</body></html>`

// Handlers serves the email generation API
type Handlers struct {
	engine   *emailx.Engine
	notifier *notifx.Client
}

// NewHandlers creates the handlers. notifier may be nil, in which case
// POST /send-email reports that no provider is configured.
func NewHandlers(engine *emailx.Engine, notifier *notifx.Client) (*Handlers, error) {
	if notifier != nil {
		if err := notifier.RegisterTemplate(LayoutTemplate, layout); err != nil {
			return nil, err
		}
	}
	return &Handlers{engine: engine, notifier: notifier}, nil
}

// RegisterRoutes mounts every route on router
func (h *Handlers) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.Root)
	router.Get("/health", h.Health)
	router.Get("/email-types", h.EmailTypes)
	router.Post("/generate-email", h.GenerateEmail)
	router.Post("/generate-emails", h.GenerateEmails)
	router.Post("/send-email", h.SendEmail)
}

// Root reports that the service is up
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Personalized Email Generator API is running!"})
}

// Health reports which generation path is active
func (h *Handlers) Health(c *fiber.Ctx) error {
	backend := emailx.SourceRemote
	if h.engine.UsesFallback() {
		backend = emailx.SourceFallback
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"backend": backend,
	})
}

// EmailTypes lists the accepted selector values
func (h *Handlers) EmailTypes(c *fiber.Ctx) error {
	return c.JSON(h.engine.ListStyleOptions())
}

// GenerateEmail generates one email
func (h *Handlers) GenerateEmail(c *fiber.Ctx) error {
	var body GenerateEmailRequest
	if err := c.BodyParser(&body); err != nil {
		return emailx.ErrInvalidRequest().WithDetail("error", err.Error())
	}

	req := body.ToRequest()
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := h.engine.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(newGenerateEmailResponse(res))
}

// GenerateEmails generates up to MaxBatchSize emails
func (h *Handlers) GenerateEmails(c *fiber.Ctx) error {
	var body BatchRequest
	if err := c.BodyParser(&body); err != nil {
		return emailx.ErrInvalidRequest().WithDetail("error", err.Error())
	}

	if len(body.Requests) == 0 {
		return emailx.ErrInvalidRequest().WithDetail("reason", "requests cannot be empty")
	}
	if len(body.Requests) > MaxBatchSize {
		return emailx.ErrInvalidRequest().
			WithDetail("reason", fmt.Sprintf("at most %d requests per batch", MaxBatchSize)).
			WithDetail("count", len(body.Requests))
	}

	reqs := make([]emailx.Request, len(body.Requests))
	for i, r := range body.Requests {
		reqs[i] = r.ToRequest()
		if err := reqs[i].Validate(); err != nil {
			return errx.From(err).WithDetail("index", i)
		}
	}

	results, err := h.engine.GenerateBatch(c.UserContext(), reqs, 0)
	if err != nil {
		return err
	}

	resp := BatchResponse{Results: make([]GenerateEmailResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = newGenerateEmailResponse(res)
	}
	return c.JSON(resp)
}

// SendEmail generates an email and delivers it
func (h *Handlers) SendEmail(c *fiber.Ctx) error {
	var body SendEmailRequest
	if err := c.BodyParser(&body); err != nil {
		return emailx.ErrInvalidRequest().WithDetail("error", err.Error())
	}

	if len(body.To) == 0 {
		return emailx.ErrInvalidRequest().WithDetail("missing_fields", []string{"to"})
	}

	req := body.ToRequest()
	if err := req.Validate(); err != nil {
		return err
	}

	if h.notifier == nil {
		return notifx.NoProviderError()
	}

	res, err := h.engine.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}

	n := req.Normalized()
	msg := notifx.EmailMessage{
		From:     body.From,
		To:       body.To,
		Subject:  res.Subject,
		TextBody: res.Body,
	}
	err = h.notifier.SendTemplatedEmail(c.UserContext(), LayoutTemplate, res.Body, msg,
		notifx.WithTags(map[string]string{
			"email_type": string(n.EmailType),
			"tone":       string(n.Tone),
			"source":     string(res.Source),
		}),
	)
	if err != nil {
		return err
	}

	return c.JSON(SendEmailResponse{
		GenerateEmailResponse: newGenerateEmailResponse(res),
		To:                    body.To,
		Sent:                  true,
	})
}
