package aianthropic

import (
	"context"
	"os"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultModel is used when the call does not name a model
	DefaultModel = "claude-sonnet-4-20250514"

	// defaultMaxTokens is required by the Messages API
	defaultMaxTokens = 1024
)

// AnthropicProvider implements llm.LLM for Anthropic Claude
type AnthropicProvider struct {
	client anthropic.Client
	apiKey string
}

// NewAnthropicProvider creates a new Anthropic provider. An empty apiKey
// falls back to ANTHROPIC_API_KEY.
func NewAnthropicProvider(apiKey string, opts ...option.RequestOption) *AnthropicProvider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &AnthropicProvider{
		client: anthropic.NewClient(options...),
		apiKey: apiKey,
	}
}

// Chat implements llm.LLM
func (p *AnthropicProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: DefaultModel}, opts...)

	params, err := buildParams(messages, options)
	if err != nil {
		return llm.Response{}, err
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseAnthropicError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromAnthropicResponse(message)
}

func buildParams(messages []llm.Message, options *llm.ChatOptions) (anthropic.MessageNewParams, error) {
	system, rest := llm.SplitSystem(messages)

	converted := make([]anthropic.MessageParam, 0, len(rest))
	for i, msg := range rest {
		switch msg.Role {
		case llm.RoleUser:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.RoleAssistant:
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return anthropic.MessageNewParams{}, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("message_index", i).
				WithDetail("role", msg.Role)
		}
	}

	if len(converted) == 0 {
		return anthropic.MessageNewParams{}, errorRegistry.New(ErrEmptyMessages).
			WithDetail("reason", "only system messages provided")
	}

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(options.Model),
		MaxTokens: maxTokens,
		Messages:  converted,
	}

	for _, s := range system {
		params.System = append(params.System, anthropic.TextBlockParam{Text: s})
	}
	if options.Temperature != 0 {
		params.Temperature = anthropic.Float(float64(options.Temperature))
	}
	if options.TopP != 0 {
		params.TopP = anthropic.Float(float64(options.TopP))
	}
	if len(options.Stop) > 0 {
		params.StopSequences = options.Stop
	}

	return params, nil
}

func convertFromAnthropicResponse(msg *anthropic.Message) (llm.Response, error) {
	if msg == nil {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "empty message")
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage: llm.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
		FinishReason: string(msg.StopReason),
	}, nil
}
