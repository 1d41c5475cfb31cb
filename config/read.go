package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alijeyrad/dentclinic/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. DENTCLINIC_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if os.Getenv(constants.EnvPrefix+"_DATABASE_HOST") == "" {
			return nil, fmt.Errorf("config file not found in %q and %s_DATABASE_HOST is unset", configPath, constants.EnvPrefix)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so env overrides work without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "dentclinic")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.pool.max_open_conns", 25)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.migrations.auto_migrate", false)
	v.SetDefault("database.migrations.safe_mode", true)
	v.SetDefault("database.logging.enabled", false)
	v.SetDefault("database.logging.slow_query_threshold_ms", 200)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("redis.read_timeout_seconds", 3)
	v.SetDefault("redis.write_timeout_seconds", 3)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 15)
	v.SetDefault("server.environment", constants.EnvDevelopment)
	v.SetDefault("server.rate_limit.requests_per_minute", 120)
	v.SetDefault("server.cors.enabled", false)

	v.SetDefault("clinic.default_region", "PY")
	v.SetDefault("clinic.currency", "PYG")
	v.SetDefault("clinic.upcoming_limit", 5)
	v.SetDefault("clinic.day_list_limit", 100)
	v.SetDefault("clinic.patient_list_limit", 1000)
	v.SetDefault("clinic.timezone", "America/Asuncion")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.timeout_seconds", 10)
	v.SetDefault("sms.enabled", false)

	v.SetDefault("codes.length", 10)
	v.SetDefault("codes.charset", "ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.AppName)
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.presign_ttl_sec", 900)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.name", constants.AppName)
}
