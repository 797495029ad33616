package llm_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
)

// recordingLLM captures the options a Chat call resolved to.
type recordingLLM struct {
	got *llm.ChatOptions
}

func (r *recordingLLM) Chat(_ context.Context, _ []llm.Message, opts ...llm.Option) (llm.Response, error) {
	r.got = llm.Apply(nil, opts...)
	return llm.Response{Message: llm.NewAssistantMessage("ok")}, nil
}

func TestClient_CallOptionsOverrideDefaults(t *testing.T) {
	rec := &recordingLLM{}
	client := llm.NewClient(rec, llm.WithModel("base"), llm.WithTemperature(0.2))

	_, err := client.Chat(context.Background(),
		[]llm.Message{llm.NewUserMessage("hi")},
		llm.WithTemperature(0.7), llm.WithMaxTokens(500),
	)
	if err != nil {
		t.Fatal(err)
	}
	if rec.got.Model != "base" || rec.got.Temperature != 0.7 || rec.got.MaxTokens != 500 {
		t.Fatalf("unexpected resolved options: %+v", rec.got)
	}
}

func TestWithModel_IgnoresEmpty(t *testing.T) {
	opts := llm.Apply(&llm.ChatOptions{Model: "keep"}, llm.WithModel(""))
	if opts.Model != "keep" {
		t.Fatalf("empty model should not override, got %q", opts.Model)
	}
}

func TestSplitSystem(t *testing.T) {
	system, rest := llm.SplitSystem([]llm.Message{
		llm.NewSystemMessage("be brief"),
		llm.NewUserMessage("hello"),
	})
	if len(system) != 1 || system[0] != "be brief" {
		t.Fatalf("unexpected system: %v", system)
	}
	if len(rest) != 1 || rest[0].Role != llm.RoleUser {
		t.Fatalf("unexpected rest: %+v", rest)
	}
}
