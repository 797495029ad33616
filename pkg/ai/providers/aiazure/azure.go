package aiazure

import (
	"context"
	"os"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aiopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// DefaultAPIVersion is the Azure OpenAI data-plane version
const DefaultAPIVersion = "2024-06-01"

// ProviderOption configures the Azure OpenAI provider
type ProviderOption func(*AzureOpenAIProvider)

// WithAPIVersion sets the Azure OpenAI API version
func WithAPIVersion(version string) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.apiVersion = version
	}
}

// WithDeployment sets the deployment used when the call names no model
func WithDeployment(deployment string) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.deployment = deployment
	}
}

// WithAzureADCredential configures Azure AD authentication
func WithAzureADCredential(cred azcore.TokenCredential) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.tokenCredential = cred
	}
}

// WithRequestOptions appends raw client options
func WithRequestOptions(opts ...option.RequestOption) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.requestOptions = append(p.requestOptions, opts...)
	}
}

// AzureOpenAIProvider implements llm.LLM for Azure OpenAI deployments
type AzureOpenAIProvider struct {
	client          openai.Client
	endpoint        string
	apiKey          string
	apiVersion      string
	deployment      string
	tokenCredential azcore.TokenCredential
	requestOptions  []option.RequestOption
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider. An empty
// apiKey falls back to AZURE_OPENAI_API_KEY.
func NewAzureOpenAIProvider(endpoint, apiKey string, opts ...ProviderOption) *AzureOpenAIProvider {
	p := &AzureOpenAIProvider{
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiVersion: DefaultAPIVersion,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.apiKey == "" {
		p.apiKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}

	clientOpts := []option.RequestOption{azure.WithEndpoint(p.endpoint, p.apiVersion)}

	if p.tokenCredential != nil {
		clientOpts = append(clientOpts, azure.WithTokenCredential(p.tokenCredential))
	} else {
		clientOpts = append(clientOpts, azure.WithAPIKey(p.apiKey))
	}

	clientOpts = append(clientOpts, p.requestOptions...)

	p.client = openai.NewClient(clientOpts...)
	return p
}

// Chat implements llm.LLM
func (p *AzureOpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.endpoint == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingEndpoint)
	}

	if p.tokenCredential == nil && p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.deployment}, opts...)

	if options.Model == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingEndpoint).
			WithDetail("error", "model/deployment name is required for Azure OpenAI")
	}

	params, err := aiopenai.NewChatParams(messages, options)
	if err != nil {
		return llm.Response{}, err
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseAzureError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	resp, err := aiopenai.ResponseFromCompletion(completion)
	if err != nil {
		return llm.Response{}, errorRegistry.NewWithCause(ErrNoChoicesInResponse, err)
	}

	return resp, nil
}
