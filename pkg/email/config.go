package email

import (
	"time"

	"github.com/Alijeyrad/dentclinic/config"
)

// Config holds email service configuration.
type Config struct {
	Enabled bool
	From    string

	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int
}

// DefaultConfig returns sensible defaults for email configuration.
func DefaultConfig() Config {
	return Config{
		SMTPPort:           587,
		SMTPTimeoutSeconds: 30,
	}
}

// SMTPTimeout returns the SMTP timeout as a duration.
func (c Config) SMTPTimeout() time.Duration {
	if c.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.EmailConfig to package Config.
// Unset SMTP port and timeout keep their defaults.
func FromCentralConfig(c config.EmailConfig) Config {
	out := DefaultConfig()
	out.Enabled = c.Enabled
	out.From = c.From
	out.SMTPHost = c.SMTP.Host
	out.SMTPUsername = c.SMTP.Username
	out.SMTPPassword = c.SMTP.Password
	out.SMTPUseTLS = c.SMTP.UseTLS
	if c.SMTP.Port > 0 {
		out.SMTPPort = c.SMTP.Port
	}
	if c.SMTP.TimeoutSeconds > 0 {
		out.SMTPTimeoutSeconds = c.SMTP.TimeoutSeconds
	}
	return out
}
