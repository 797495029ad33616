package aibedrock

import (
	"context"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// DefaultModel is the model ID used when none is configured
const DefaultModel = "anthropic.claude-3-haiku-20240307-v1:0"

// ConverseAPI is the subset of the Bedrock runtime client the provider uses
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// ProviderOption configures the Bedrock provider
type ProviderOption func(*BedrockProvider)

// WithDefaultModel sets the default model ID
func WithDefaultModel(model string) ProviderOption {
	return func(p *BedrockProvider) {
		if model != "" {
			p.defaultModel = model
		}
	}
}

// WithClient replaces the runtime client
func WithClient(client ConverseAPI) ProviderOption {
	return func(p *BedrockProvider) {
		p.client = client
	}
}

// BedrockProvider implements llm.LLM on the Bedrock Converse API
type BedrockProvider struct {
	client       ConverseAPI
	defaultModel string
}

// NewBedrockProvider creates a new Bedrock provider
func NewBedrockProvider(cfg aws.Config, opts ...ProviderOption) *BedrockProvider {
	p := &BedrockProvider{
		client:       bedrockruntime.NewFromConfig(cfg),
		defaultModel: DefaultModel,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Chat implements llm.LLM
func (p *BedrockProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultModel}, opts...)

	systemBlocks, nonSystemMsgs := extractSystemPrompt(messages)

	bedrockMsgs, err := convertMessages(nonSystemMsgs)
	if err != nil {
		return llm.Response{}, err
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(options.Model),
		Messages: bedrockMsgs,
	}

	if len(systemBlocks) > 0 {
		input.System = systemBlocks
	}

	if inferenceConfig := buildInferenceConfig(options); inferenceConfig != nil {
		input.InferenceConfig = inferenceConfig
	}

	output, err := p.client.Converse(ctx, input)
	if err != nil {
		return llm.Response{}, ParseBedrockError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromBedrockResponse(output)
}

func extractSystemPrompt(messages []llm.Message) ([]types.SystemContentBlock, []llm.Message) {
	system, rest := llm.SplitSystem(messages)

	blocks := make([]types.SystemContentBlock, 0, len(system))
	for _, s := range system {
		blocks = append(blocks, &types.SystemContentBlockMemberText{Value: s})
	}

	return blocks, rest
}

func convertMessages(messages []llm.Message) ([]types.Message, error) {
	if len(messages) == 0 {
		return nil, errorRegistry.New(ErrEmptyMessages).
			WithDetail("reason", "only system messages provided")
	}

	result := make([]types.Message, 0, len(messages))
	for i, msg := range messages {
		var role types.ConversationRole
		switch msg.Role {
		case llm.RoleUser:
			role = types.ConversationRoleUser
		case llm.RoleAssistant:
			role = types.ConversationRoleAssistant
		default:
			return nil, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("message_index", i).
				WithDetail("role", msg.Role)
		}

		result = append(result, types.Message{
			Role: role,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: msg.Content},
			},
		})
	}

	return result, nil
}

func buildInferenceConfig(options *llm.ChatOptions) *types.InferenceConfiguration {
	config := &types.InferenceConfiguration{}
	hasConfig := false

	if options.MaxTokens > 0 {
		config.MaxTokens = aws.Int32(int32(options.MaxTokens))
		hasConfig = true
	}

	if options.Temperature != 0 {
		config.Temperature = aws.Float32(options.Temperature)
		hasConfig = true
	}

	if options.TopP != 0 {
		config.TopP = aws.Float32(options.TopP)
		hasConfig = true
	}

	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
		hasConfig = true
	}

	if !hasConfig {
		return nil
	}

	return config
}

func convertFromBedrockResponse(output *bedrockruntime.ConverseOutput) (llm.Response, error) {
	if output == nil {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "empty output")
	}

	msgOutput, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "unexpected output type")
	}

	var content strings.Builder
	for _, block := range msgOutput.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			content.WriteString(text.Value)
		}
	}

	usage := llm.Usage{}
	if output.Usage != nil {
		usage.PromptTokens = int(aws.ToInt32(output.Usage.InputTokens))
		usage.CompletionTokens = int(aws.ToInt32(output.Usage.OutputTokens))
		usage.TotalTokens = int(aws.ToInt32(output.Usage.TotalTokens))
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage:        usage,
		FinishReason: string(output.StopReason),
	}, nil
}
