package config

import "time"

// EmailConfig tunes the generation engine.
type EmailConfig struct {
	MaxTokens      int
	Temperature    float32
	BackendTimeout time.Duration
	BatchWorkers   int
}

func loadEmailConfig() EmailConfig {
	return EmailConfig{
		MaxTokens:      getEnvInt("EMAIL_MAX_TOKENS", 500),
		Temperature:    float32(getEnvFloat("EMAIL_TEMPERATURE", 0.7)),
		BackendTimeout: getEnvDuration("EMAIL_BACKEND_TIMEOUT", 30*time.Second),
		BatchWorkers:   getEnvInt("EMAIL_BATCH_WORKERS", 4),
	}
}
