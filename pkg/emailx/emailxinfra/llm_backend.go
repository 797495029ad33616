package emailxinfra

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/Abraxas-365/mailsmith/pkg/emailx"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
)

// LLMBackend implements emailx.Backend on top of any chat provider
type LLMBackend struct {
	client llm.LLM
	opts   []llm.Option
}

// NewLLMBackend creates a backend over client. opts are applied to every
// call before the completion settings.
func NewLLMBackend(client llm.LLM, opts ...llm.Option) *LLMBackend {
	return &LLMBackend{client: client, opts: opts}
}

// Complete implements emailx.Backend. Errors carry the EMAILX backend code
// matching the provider failure.
func (b *LLMBackend) Complete(ctx context.Context, c emailx.Completion) (string, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(c.System),
		llm.NewUserMessage(c.User),
	}

	opts := append([]llm.Option{}, b.opts...)
	opts = append(opts,
		llm.WithMaxTokens(c.MaxTokens),
		llm.WithTemperature(c.Temperature),
	)

	resp, err := b.client.Chat(ctx, messages, opts...)
	if err != nil {
		return "", emailx.NewFailure(Classify(err), err)
	}

	if strings.TrimSpace(resp.Message.Content) == "" {
		return "", emailx.NewFailure(emailx.FailureMalformed, errors.New("empty completion")).
			WithDetail("finish_reason", resp.FinishReason)
	}

	return resp.Message.Content, nil
}

// Classify maps a provider error to a backend failure kind. Providers
// register codes as <PREFIX>_<NAME>, so the name suffix identifies the
// failure regardless of provider.
func Classify(err error) emailx.FailureKind {
	if err == nil {
		return emailx.FailureNone
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return emailx.FailureNetwork
	}

	var e *errx.Error
	if !errx.As(err, &e) {
		return emailx.FailureNetwork
	}

	switch {
	case hasSuffix(e.Code, "_API_UNAUTHORIZED", "_MISSING_API_KEY") || e.Type == errx.TypeAuthorization:
		return emailx.FailureAuth
	case hasSuffix(e.Code, "_API_RATE_LIMIT", "_API_QUOTA_EXCEEDED") || e.HTTPStatus == http.StatusTooManyRequests:
		return emailx.FailureQuota
	case hasSuffix(e.Code, "_API_RESPONSE_INVALID", "_NO_CHOICES_IN_RESPONSE"):
		return emailx.FailureMalformed
	default:
		return emailx.FailureNetwork
	}
}

func hasSuffix(code string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(code, s) {
			return true
		}
	}
	return false
}
