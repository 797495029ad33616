package aiopenai

import (
	"context"
	"os"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when neither the client nor the call names a model
const DefaultModel = "gpt-4o-mini"

// OpenAIProvider implements llm.LLM on the Chat Completions API
type OpenAIProvider struct {
	client openai.Client
	apiKey string
}

// NewOpenAIProvider creates a new OpenAI provider. An empty apiKey falls
// back to OPENAI_API_KEY.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &OpenAIProvider{
		client: openai.NewClient(options...),
		apiKey: apiKey,
	}
}

// Chat implements llm.LLM
func (p *OpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	options := llm.Apply(&llm.ChatOptions{Model: DefaultModel}, opts...)

	params, err := NewChatParams(messages, options)
	if err != nil {
		return llm.Response{}, err
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseOpenAIError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return ResponseFromCompletion(completion)
}

// NewChatParams converts messages and options into request params. The
// Azure provider shares it since both speak the same wire format.
func NewChatParams(messages []llm.Message, options *llm.ChatOptions) (openai.ChatCompletionNewParams, error) {
	if len(messages) == 0 {
		return openai.ChatCompletionNewParams{}, errorRegistry.New(ErrEmptyMessages)
	}

	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case llm.RoleUser:
			converted = append(converted, openai.UserMessage(msg.Content))
		case llm.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			return openai.ChatCompletionNewParams{}, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("message_index", i).
				WithDetail("role", msg.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages: converted,
		Model:    options.Model,
	}

	if options.Temperature != 0 {
		params.Temperature = openai.Float(float64(options.Temperature))
	}
	if options.TopP != 0 {
		params.TopP = openai.Float(float64(options.TopP))
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if len(options.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: options.Stop,
		}
	}
	if options.User != "" {
		params.User = openai.String(options.User)
	}

	return params, nil
}

// ResponseFromCompletion maps the first choice of a completion
func ResponseFromCompletion(completion *openai.ChatCompletion) (llm.Response, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return llm.Response{}, errorRegistry.New(ErrNoChoicesInResponse)
	}

	choice := completion.Choices[0]

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: choice.Message.Content,
		},
		Usage: llm.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
		FinishReason: string(choice.FinishReason),
	}, nil
}
