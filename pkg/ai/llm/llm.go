package llm

import "context"

// LLM is implemented by every chat provider under pkg/ai/providers
type LLM interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// ChatOptions holds per-call generation settings
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	TopP        float32
	Stop        []string
	User        string
}

// Option configures a single Chat call
type Option func(*ChatOptions)

// DefaultOptions returns options with no model and provider-side defaults
func DefaultOptions() *ChatOptions {
	return &ChatOptions{}
}

// Apply builds ChatOptions from defaults and opts
func Apply(defaults *ChatOptions, opts ...Option) *ChatOptions {
	if defaults == nil {
		defaults = DefaultOptions()
	}
	for _, opt := range opts {
		opt(defaults)
	}
	return defaults
}

// WithModel selects the model or deployment name
func WithModel(model string) Option {
	return func(o *ChatOptions) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithMaxTokens bounds the completion length
func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) Option {
	return func(o *ChatOptions) {
		o.Temperature = t
	}
}

// WithTopP sets nucleus sampling
func WithTopP(p float32) Option {
	return func(o *ChatOptions) {
		o.TopP = p
	}
}

// WithStop sets stop sequences
func WithStop(stop ...string) Option {
	return func(o *ChatOptions) {
		o.Stop = stop
	}
}

// WithUser tags the request with an end-user identifier
func WithUser(user string) Option {
	return func(o *ChatOptions) {
		o.User = user
	}
}

// Client wraps a provider and applies defaults shared by every call
type Client struct {
	provider LLM
	defaults []Option
}

// NewClient creates a client over provider. defaults are applied before
// any per-call option.
func NewClient(provider LLM, defaults ...Option) *Client {
	return &Client{provider: provider, defaults: defaults}
}

// Chat sends messages through the provider
func (c *Client) Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	all := make([]Option, 0, len(c.defaults)+len(opts))
	all = append(all, c.defaults...)
	all = append(all, opts...)
	return c.provider.Chat(ctx, messages, all...)
}
