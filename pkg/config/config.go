package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration assembled from the environment.
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Email  EmailConfig
	Notifx NotifxConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	CORSOrigins     string
	Version         string
	ShutdownTimeout time.Duration
	BodyLimit       int
}

// Load reads an optional .env file and then the environment. Values already
// present in the environment win over the file.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	return &Config{
		Server: loadServerConfig(),
		LLM:    loadLLMConfig(),
		Email:  loadEmailConfig(),
		Notifx: loadNotifxConfig(),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8000"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		Version:         getEnv("APP_VERSION", "1.0.0"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		BodyLimit:       getEnvInt("BODY_LIMIT", 1024*1024),
	}
}

// ---- env helpers ----

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if i, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return i
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return fallback
}
