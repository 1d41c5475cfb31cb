package redis

import (
	"time"

	"github.com/Alijeyrad/dentclinic/config"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// FromCentralConfig converts config.RedisConfig, filling unset values from DefaultConfig.
func FromCentralConfig(c config.RedisConfig) Config {
	def := DefaultConfig()
	return Config{
		Addr:         c.Addr,
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		PoolSize:     positiveOr(c.PoolSize, def.PoolSize),
		MinIdleConns: positiveOr(c.MinIdleConns, def.MinIdleConns),
		DialTimeout:  secondsOr(c.DialTimeoutSeconds, def.DialTimeout),
		ReadTimeout:  secondsOr(c.ReadTimeoutSeconds, def.ReadTimeout),
		WriteTimeout: secondsOr(c.WriteTimeoutSeconds, def.WriteTimeout),
	}
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func secondsOr(v int, def time.Duration) time.Duration {
	if v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}
