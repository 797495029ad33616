// cmd/container.go
//
// Composition root. Builds the LLM provider, the generation engine, the
// delivery client and the HTTP handlers from configuration.
package main

import (
	"context"

	"github.com/Abraxas-365/mailsmith/pkg/ai/llm"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aiazure"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aibedrock"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aigemini"
	"github.com/Abraxas-365/mailsmith/pkg/ai/providers/aiopenai"
	"github.com/Abraxas-365/mailsmith/pkg/config"
	"github.com/Abraxas-365/mailsmith/pkg/emailx"
	"github.com/Abraxas-365/mailsmith/pkg/emailx/emailxapi"
	"github.com/Abraxas-365/mailsmith/pkg/emailx/emailxinfra"
	"github.com/Abraxas-365/mailsmith/pkg/logx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx"
	"github.com/Abraxas-365/mailsmith/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/mailsmith/pkg/notifx/notifxses"
	"github.com/Abraxas-365/mailsmith/pkg/notifx/notifxsmtp"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// Container holds the wired application components.
type Container struct {
	Config *config.Config

	LLM      llm.LLM
	Engine   *emailx.Engine
	Notifier *notifx.Client
	Handlers *emailxapi.Handlers
}

func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initLLM(ctx)
	c.initEngine()
	c.initNotifier(ctx)
	c.initHandlers()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// LLM provider
// ---------------------------------------------------------------------------

func (c *Container) initLLM(ctx context.Context) {
	cfg := c.Config.LLM

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		logx.WithError(err).Warnf("LLM provider %q unavailable, using local templates", cfg.Provider)
		return
	}
	if provider == nil {
		logx.Info("  ℹ️ No LLM provider configured, using local templates")
		return
	}

	c.LLM = llm.NewClient(provider, llm.WithModel(cfg.Model))
	logx.Infof("  ✅ LLM provider configured (%s)", cfg.Provider)
}

func newProvider(ctx context.Context, cfg config.LLMConfig) (llm.LLM, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return aiopenai.NewOpenAIProvider(cfg.APIKey), nil

	case config.ProviderAnthropic:
		return aianthropic.NewAnthropicProvider(cfg.APIKey), nil

	case config.ProviderGemini:
		if emailx.IsPlaceholderCredential(cfg.APIKey) {
			return nil, nil
		}
		return aigemini.NewGeminiProvider(ctx, cfg.APIKey)

	case config.ProviderBedrock:
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		return aibedrock.NewBedrockProvider(awsCfg, aibedrock.WithDefaultModel(cfg.Model)), nil

	case config.ProviderAzure:
		return aiazure.NewAzureOpenAIProvider(cfg.AzureEndpoint, cfg.APIKey,
			aiazure.WithDeployment(cfg.Model),
		), nil

	case config.ProviderNone:
		return nil, nil

	default:
		logx.Warnf("Unknown LLM_PROVIDER: %s (use openai, anthropic, gemini, bedrock, azure or none)", cfg.Provider)
		return nil, nil
	}
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

func (c *Container) initEngine() {
	cfg := c.Config.Email

	opts := []emailx.Option{
		emailx.WithMaxTokens(cfg.MaxTokens),
		emailx.WithTemperature(cfg.Temperature),
		emailx.WithTimeout(cfg.BackendTimeout),
		emailx.WithBatchWorkers(cfg.BatchWorkers),
	}

	if c.LLM != nil {
		backend := emailxinfra.NewLLMBackend(c.LLM)
		opts = append(opts, emailx.WithBackend(backend, c.Config.LLM.Credential()))
	}

	c.Engine = emailx.NewEngine(opts...)

	if c.Engine.UsesFallback() {
		logx.Info("  ✅ Email engine ready (local templates)")
	} else {
		logx.Info("  ✅ Email engine ready (remote backend with template fallback)")
	}
}

// ---------------------------------------------------------------------------
// Delivery
// ---------------------------------------------------------------------------

func (c *Container) initNotifier(ctx context.Context) {
	cfg := c.Config.Notifx

	switch cfg.Provider {
	case "ses":
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.Notifier = notifx.NewClient(notifxses.NewSESProvider(ses.NewFromConfig(awsCfg), cfg.From()), cfg.From())
		logx.Infof("  ✅ SES delivery configured (region: %s)", cfg.AWSRegion)

	case "smtp":
		provider := notifxsmtp.NewSMTPProvider(notifxsmtp.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			TLSMode:  cfg.SMTP.TLSMode,
		}, cfg.From())
		c.Notifier = notifx.NewClient(provider, cfg.From())
		logx.Infof("  ✅ SMTP delivery configured (%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)

	case "console":
		c.Notifier = notifx.NewClient(notifxconsole.NewConsoleProvider(nil), cfg.From())
		logx.Info("  ✅ Console delivery configured")

	case "none":
		logx.Info("  ℹ️ Delivery disabled")

	default:
		logx.Fatalf("Unknown NOTIFX_PROVIDER: %s (use 'console', 'ses', 'smtp' or 'none')", cfg.Provider)
	}
}

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

func (c *Container) initHandlers() {
	handlers, err := emailxapi.NewHandlers(c.Engine, c.Notifier)
	if err != nil {
		logx.Fatalf("Failed to initialize handlers: %v", err)
	}
	c.Handlers = handlers
}
