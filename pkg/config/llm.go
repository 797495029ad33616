package config

import "strings"

// Supported LLM providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
	ProviderNone      = "none"
)

// LLMConfig selects and configures the remote generation backend.
type LLMConfig struct {
	Provider      string
	APIKey        string
	Model         string
	AzureEndpoint string
	AWSRegion     string
}

var providerKeyEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderAzure:     "AZURE_OPENAI_API_KEY",
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	apiKey := getEnv("LLM_API_KEY", "")
	if apiKey == "" {
		if env, ok := providerKeyEnv[provider]; ok {
			apiKey = getEnv(env, "")
		}
	}

	return LLMConfig{
		Provider:      provider,
		APIKey:        apiKey,
		Model:         getEnv("LLM_MODEL", ""),
		AzureEndpoint: getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
	}
}

// Credential is the value the engine checks before calling the backend.
// Bedrock authenticates through the AWS credential chain, so its
// credential is the region it runs in.
func (c LLMConfig) Credential() string {
	switch c.Provider {
	case ProviderNone:
		return ""
	case ProviderBedrock:
		return "aws:" + c.AWSRegion
	default:
		return c.APIKey
	}
}
