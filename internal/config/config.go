package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	History HistoryConfig `mapstructure:"history"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Profile ProfileConfig `mapstructure:"profile"`
}

// APIConfig holds wardrobe API client configuration
type APIConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	Token                string   `mapstructure:"token"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	Proxies              []string `mapstructure:"proxies"`

	// Durations in seconds
	Timeout   int `mapstructure:"timeout"`
	RetryWait int `mapstructure:"retry_wait"`

	// Cooldown after the server answers 429
	CircuitBreakerCooldown int `mapstructure:"circuit_breaker_cooldown"` // seconds
}

func (c APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c APIConfig) RetryWaitDuration() time.Duration {
	return time.Duration(c.RetryWait) * time.Second
}

func (c APIConfig) CooldownDuration() time.Duration {
	return time.Duration(c.CircuitBreakerCooldown) * time.Second
}

// HistoryConfig holds outfit history defaults
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// RedisConfig holds Redis connection details. Redis is optional; without it
// preferences live in memory and diagnostics only go to the log.
type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	Database     int    `mapstructure:"database"`
	KeyPrefix    string `mapstructure:"key_prefix"`
	StreamPrefix string `mapstructure:"stream_prefix"`
	StreamMaxLen int64  `mapstructure:"stream_max_len"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig controls logrus output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// ProfileConfig identifies whose preferences are read and written
type ProfileConfig struct {
	User string `mapstructure:"user"`
}

// Load reads config.yaml from the current directory, or path when given, with
// WARDROBE_* environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("wardrobe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.API.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("api.max_requests_per_second must not be negative")
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive, got %d", c.History.Limit)
	}
	if c.Profile.User == "" {
		return fmt.Errorf("profile.user must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5001/api")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("api.max_retries", 2)
	v.SetDefault("api.retry_wait", 1)
	v.SetDefault("api.max_requests_per_second", 10)
	v.SetDefault("api.proxies", []string{})
	v.SetDefault("api.circuit_breaker_cooldown", 60)

	v.SetDefault("history.limit", 20)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "wardrobe:preferences:")
	v.SetDefault("redis.stream_prefix", "wardrobe:stream:")
	v.SetDefault("redis.stream_max_len", 1000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("profile.user", "me")
}
