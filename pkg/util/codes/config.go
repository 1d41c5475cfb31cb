package codes

import "github.com/Alijeyrad/dentclinic/config"

// defaultCharset is upper-case alphanumeric without ambiguous characters.
const defaultCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Config holds code generation settings.
type Config struct {
	Length  int
	Charset string
}

// DefaultConfig returns sensible defaults for code generation.
func DefaultConfig() Config {
	return Config{
		Length:  10,
		Charset: defaultCharset,
	}
}

// GetCharset returns the configured charset or the default if empty.
func (c Config) GetCharset() string {
	if c.Charset == "" {
		return defaultCharset
	}
	return c.Charset
}

// FromCentralConfig converts central config.CodesConfig to package Config.
func FromCentralConfig(c config.CodesConfig) Config {
	return Config{
		Length:  c.Length,
		Charset: c.Charset,
	}
}
