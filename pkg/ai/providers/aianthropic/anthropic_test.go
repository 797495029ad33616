package aianthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *aianthropic.AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return aianthropic.NewAnthropicProvider("sk-ant-test",
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
}

func TestChat_SendsSystemOutOfBand(t *testing.T) {
	var body map[string]any
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude",
			"content": [{"type": "text", "text": "Hello "}, {"type": "text", "text": "there"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 5, "output_tokens": 2}
		}`))
	})

	resp, err := provider.Chat(context.Background(), []llm.Message{
		llm.NewSystemMessage("You write emails."),
		llm.NewUserMessage("Write one."),
	}, llm.WithMaxTokens(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message.Content != "Hello there" || resp.Usage.TotalTokens != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	msgs, _ := body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("system message should not be sent as a turn, got %d messages", len(msgs))
	}
	if body["system"] == nil {
		t.Fatal("expected system prompt in request body")
	}
	if body["max_tokens"] != float64(500) {
		t.Fatalf("expected max_tokens 500, got %v", body["max_tokens"])
	}
}

func TestChat_OnlySystemMessages(t *testing.T) {
	provider := aianthropic.NewAnthropicProvider("key")

	_, err := provider.Chat(context.Background(), []llm.Message{llm.NewSystemMessage("sys")})
	if !errx.HasCode(err, aianthropic.ErrEmptyMessages) {
		t.Fatalf("expected empty messages, got %v", err)
	}
}

func TestParseAnthropicError_MessageFallback(t *testing.T) {
	cases := map[string]*errx.ErrorCode{
		"authentication_error: invalid x-api-key": aianthropic.ErrAPIUnauthorized,
		"overloaded_error":                        aianthropic.ErrAPIQuotaExceeded,
		"i/o timeout":                             aianthropic.ErrAPIRequest,
	}
	for msg, want := range cases {
		if got := aianthropic.ParseAnthropicError(errors.New(msg)); got.Code != want.Code {
			t.Errorf("%q: got %s, want %s", msg, got.Code, want.Code)
		}
	}
}
