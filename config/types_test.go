package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8080, Environment: "development"},
		Clinic:  ClinicConfig{DefaultRegion: "PY", UpcomingLimit: 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "prod" }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"lowercase region", func(c *Config) { c.Clinic.DefaultRegion = "ar" }, false},
		{"unknown region", func(c *Config) { c.Clinic.DefaultRegion = "XX" }, true},
		{"negative limit", func(c *Config) { c.Clinic.UpcomingLimit = -1 }, true},
		{"email without host", func(c *Config) { c.Email.Enabled = true }, true},
		{"sms without key", func(c *Config) { c.SMS.Enabled = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadConfigAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	body := []byte("server:\n  port: 9000\ndatabase:\n  host: db.local\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DENTCLINIC_DATABASE_HOST", "override.local")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Host != "override.local" {
		t.Errorf("database.host = %q, want override.local", cfg.Database.Host)
	}
	if cfg.Clinic.UpcomingLimit != 5 {
		t.Errorf("clinic.upcoming_limit default = %d, want 5", cfg.Clinic.UpcomingLimit)
	}
}

func TestClinicLocationFallback(t *testing.T) {
	if got := (ClinicConfig{Timezone: "Nowhere/City"}).Location(); got.String() != "UTC" {
		t.Errorf("Location() = %s, want UTC", got)
	}
}
