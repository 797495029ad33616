package emailxapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/emailx"
	"github.com/Abraxas-365/mailsmith/pkg/emailx/emailxapi"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/Abraxas-365/mailsmith/pkg/logx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	"github.com/gofiber/fiber/v2"
)

type recordingSender struct {
	sent []notifx.EmailMessage
	tags []map[string]string
}

func (s *recordingSender) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	s.sent = append(s.sent, msg)
	s.tags = append(s.tags, notifx.ApplySendOptions(opts).Tags)
	return nil
}

type backendFunc func(ctx context.Context, c emailx.Completion) (string, error)

func (f backendFunc) Complete(ctx context.Context, c emailx.Completion) (string, error) {
	return f(ctx, c)
}

func newApp(t *testing.T, engine *emailx.Engine, notifier *notifx.Client) *fiber.App {
	t.Helper()

	handlers, err := emailxapi.NewHandlers(engine, notifier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			e := errx.From(err)
			return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse(""))
		},
	})
	handlers.RegisterRoutes(app)
	return app
}

func quietEngine(opts ...emailx.Option) *emailx.Engine {
	cfg := logx.DefaultConfig()
	cfg.Output = io.Discard
	return emailx.NewEngine(append([]emailx.Option{emailx.WithLogger(logx.NewLogger(cfg))}, opts...)...)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

const johnSmith = `{
	"recipient_name": "John Smith",
	"sender_name": "Jane Doe",
	"subject": "Project Proposal",
	"context": "Following up on our meeting",
	"email_type": "Business",
	"tone": "Professional",
	"length": "Medium"
}`

func TestRootAndHealth(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, body := do(t, app, http.MethodGet, "/", "")
	if status != http.StatusOK || body["message"] != "Personalized Email Generator API is running!" {
		t.Fatalf("unexpected root response: %d %v", status, body)
	}

	status, body = do(t, app, http.MethodGet, "/health", "")
	if status != http.StatusOK || body["status"] != "healthy" || body["backend"] != "fallback" {
		t.Fatalf("unexpected health response: %d %v", status, body)
	}
}

func TestGenerateEmail(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, body := do(t, app, http.MethodPost, "/generate-email", johnSmith)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", status, body)
	}

	email, _ := body["email"].(string)
	if body["subject"] != "Project Proposal" || !strings.HasPrefix(email, "Dear John Smith,") {
		t.Fatalf("unexpected response: %v", body)
	}
	if body["word_count"] != float64(56) {
		t.Fatalf("unexpected word count: %v", body["word_count"])
	}
	if _, leaked := body["Source"]; leaked {
		t.Fatal("source must not be serialized")
	}
}

func TestGenerateEmail_DefaultsSelectors(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	_, full := do(t, app, http.MethodPost, "/generate-email", johnSmith)
	status, minimal := do(t, app, http.MethodPost, "/generate-email",
		`{"recipient_name":"John Smith","sender_name":"Jane Doe","subject":"Project Proposal","context":"Following up on our meeting"}`)

	if status != http.StatusOK || minimal["email"] != full["email"] {
		t.Fatalf("omitted selectors should default to Business/Professional/Medium: %v", minimal)
	}
}

func TestGenerateEmail_InvalidInput(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, body := do(t, app, http.MethodPost, "/generate-email", `{"recipient_name": "John"}`)
	if status != http.StatusBadRequest || body["code"] != emailx.CodeInvalidRequest.Code {
		t.Fatalf("expected 400 invalid request, got %d %v", status, body)
	}

	status, _ = do(t, app, http.MethodPost, "/generate-email", `{not json`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", status)
	}
}

func TestGenerateEmail_RemoteFailureStillSucceeds(t *testing.T) {
	backend := backendFunc(func(context.Context, emailx.Completion) (string, error) {
		return "", errors.New("connection refused")
	})
	app := newApp(t, quietEngine(emailx.WithBackend(backend, "sk-live")), nil)

	status, body := do(t, app, http.MethodPost, "/generate-email", johnSmith)
	if status != http.StatusOK {
		t.Fatalf("backend failure should not surface: %d %v", status, body)
	}
}

func TestGenerateEmails(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, body := do(t, app, http.MethodPost, "/generate-emails", `{"requests": [`+johnSmith+`, `+
		`{"recipient_name":"Sarah Johnson","sender_name":"Mike Wilson","subject":"Coffee Chat","email_type":"Personal","tone":"Friendly","length":"Short"}]}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", status, body)
	}

	results, _ := body["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %v", body)
	}
	second, _ := results[1].(map[string]any)
	if second["subject"] != "Coffee Chat" {
		t.Fatalf("results out of order: %v", results)
	}
}

func TestGenerateEmails_Limits(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, _ := do(t, app, http.MethodPost, "/generate-emails", `{"requests": []}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", status)
	}

	items := make([]string, emailxapi.MaxBatchSize+1)
	for i := range items {
		items[i] = johnSmith
	}
	status, _ = do(t, app, http.MethodPost, "/generate-emails", `{"requests": [`+strings.Join(items, ",")+`]}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized batch, got %d", status)
	}

	status, body := do(t, app, http.MethodPost, "/generate-emails", `{"requests": [`+johnSmith+`, {"subject": "x"}]}`)
	details, _ := body["details"].(map[string]any)
	if status != http.StatusBadRequest || details["index"] != float64(1) {
		t.Fatalf("expected invalid item index 1, got %d %v", status, body)
	}
}

func TestEmailTypes(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, body := do(t, app, http.MethodGet, "/email-types", "")
	types, _ := body["email_types"].([]any)
	tones, _ := body["tones"].([]any)
	lengths, _ := body["lengths"].([]any)
	if status != http.StatusOK || len(types) != 5 || len(tones) != 5 || len(lengths) != 3 {
		t.Fatalf("unexpected style options: %v", body)
	}
}

func TestSendEmail(t *testing.T) {
	sender := &recordingSender{}
	app := newApp(t, quietEngine(), notifx.NewClient(sender, "noreply@example.com"))

	payload := strings.TrimSuffix(strings.TrimSpace(johnSmith), "}") + `, "to": ["john@example.com"]}`
	status, body := do(t, app, http.MethodPost, "/send-email", payload)
	if status != http.StatusOK || body["sent"] != true {
		t.Fatalf("unexpected response %d: %v", status, body)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.From != "noreply@example.com" || msg.Subject != "Project Proposal" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if !strings.HasPrefix(msg.TextBody, "Dear John Smith,") || !strings.Contains(msg.HTMLBody, "<p>Dear John Smith,</p>") {
		t.Fatalf("unexpected bodies: %+v", msg)
	}
	if sender.tags[0]["source"] != "fallback" || sender.tags[0]["email_type"] != "Business" {
		t.Fatalf("unexpected tags: %v", sender.tags[0])
	}
}

func TestSendEmail_Errors(t *testing.T) {
	app := newApp(t, quietEngine(), nil)

	status, _ := do(t, app, http.MethodPost, "/send-email", johnSmith)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 without recipients, got %d", status)
	}

	payload := strings.TrimSuffix(strings.TrimSpace(johnSmith), "}") + `, "to": ["john@example.com"]}`
	status, body := do(t, app, http.MethodPost, "/send-email", payload)
	if status != http.StatusInternalServerError || body["code"] != notifx.ErrNoProvider.Code {
		t.Fatalf("expected no provider error, got %d %v", status, body)
	}
}
