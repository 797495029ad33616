package config

// NotifxConfig configures email delivery.
type NotifxConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	AWSRegion   string
	SMTP        SMTPConfig
}

// SMTPConfig holds SMTP relay settings for NOTIFX_PROVIDER=smtp.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  string
}

// From renders the sender as "Name <address>" when a name is set.
func (c NotifxConfig) From() string {
	if c.FromName == "" {
		return c.FromAddress
	}
	return c.FromName + " <" + c.FromAddress + ">"
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", getEnv("EMAIL_FROM_ADDRESS", "noreply@mailsmith.local")),
		FromName:    getEnv("NOTIFX_FROM_NAME", getEnv("EMAIL_FROM_NAME", "Mailsmith")),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			TLSMode:  getEnv("SMTP_TLS_MODE", "starttls"),
		},
	}
}
