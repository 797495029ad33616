package aigemini

import (
	"context"
	"os"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"google.golang.org/genai"
)

// DefaultModel is used when the call does not name a model
const DefaultModel = "gemini-2.0-flash"

// ProviderOption configures the Gemini provider
type ProviderOption func(*GeminiProvider)

// WithVertexAI configures the provider to use Vertex AI backend
func WithVertexAI(project, location string) ProviderOption {
	return func(p *GeminiProvider) {
		p.project = project
		p.location = location
		p.useVertexAI = true
	}
}

// WithBaseURL points the client at a different API host
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *GeminiProvider) {
		p.baseURL = baseURL
	}
}

// GeminiProvider implements llm.LLM for Google Gemini
type GeminiProvider struct {
	client      *genai.Client
	apiKey      string
	project     string
	location    string
	baseURL     string
	useVertexAI bool
}

// NewGeminiProvider creates a new Gemini provider. An empty apiKey falls
// back to GEMINI_API_KEY.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...ProviderOption) (*GeminiProvider, error) {
	p := &GeminiProvider{apiKey: apiKey}

	for _, opt := range opts {
		opt(p)
	}

	if p.apiKey == "" {
		p.apiKey = os.Getenv("GEMINI_API_KEY")
	}

	config := &genai.ClientConfig{}

	if p.useVertexAI {
		config.Backend = genai.BackendVertexAI
		config.Project = p.project
		config.Location = p.location
	} else {
		if p.apiKey == "" {
			return nil, errorRegistry.New(ErrMissingAPIKey)
		}
		config.APIKey = p.apiKey
		config.Backend = genai.BackendGeminiAPI
	}

	if p.baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIRequest, err).
			WithDetail("error", "failed to create Gemini client")
	}

	p.client = client
	return p, nil
}

// Chat implements llm.LLM
func (p *GeminiProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: DefaultModel}, opts...)

	systemContent, contents, err := convertMessages(messages)
	if err != nil {
		return llm.Response{}, err
	}

	config := buildGenerateConfig(options, systemContent)

	result, err := p.client.Models.GenerateContent(ctx, options.Model, contents, config)
	if err != nil {
		return llm.Response{}, ParseGeminiError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromGeminiResponse(result)
}

func convertMessages(messages []llm.Message) (*genai.Content, []*genai.Content, error) {
	var systemContent *genai.Content
	var contents []*genai.Content

	system, rest := llm.SplitSystem(messages)
	if len(system) > 0 {
		systemContent = &genai.Content{}
		for _, s := range system {
			systemContent.Parts = append(systemContent.Parts, genai.NewPartFromText(s))
		}
	}

	for i, msg := range rest {
		var role string
		switch msg.Role {
		case llm.RoleUser:
			role = "user"
		case llm.RoleAssistant:
			role = "model"
		default:
			return nil, nil, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("message_index", i).
				WithDetail("role", msg.Role)
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	if len(contents) == 0 {
		return nil, nil, errorRegistry.New(ErrEmptyMessages).
			WithDetail("reason", "only system messages provided")
	}

	return systemContent, contents, nil
}

func buildGenerateConfig(options *llm.ChatOptions, systemContent *genai.Content) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if systemContent != nil {
		config.SystemInstruction = systemContent
	}

	if options.Temperature != 0 {
		config.Temperature = genai.Ptr(options.Temperature)
	}
	if options.TopP != 0 {
		config.TopP = genai.Ptr(options.TopP)
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}

	return config
}

func convertFromGeminiResponse(result *genai.GenerateContentResponse) (llm.Response, error) {
	if result == nil || len(result.Candidates) == 0 {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "no candidates in response")
	}

	candidate := result.Candidates[0]

	var content strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			content.WriteString(part.Text)
		}
	}

	usage := llm.Usage{}
	if result.UsageMetadata != nil {
		usage.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage:        usage,
		FinishReason: string(candidate.FinishReason),
	}, nil
}
