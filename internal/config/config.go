// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
// Only the binaries read configuration; the router and adapters take explicit input.
package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/hpn/hpn-llm-router/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration for the HTTP facade.
	Server ServerConfig `json:"server" mapstructure:"server"`

	// HTTP configures the outbound client used for provider calls.
	HTTP HTTPConfig `json:"http" mapstructure:"http"`

	// Endpoints overrides provider base URLs. Empty means provider default.
	Endpoints ProviderValues `json:"endpoints" mapstructure:"endpoints"`

	// Credentials are fallback API keys used when a request carries none.
	Credentials ProviderValues `json:"-" mapstructure:"credentials"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Metrics configuration
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`

	// Source is the config file that was read, empty when none was found.
	Source string `json:"-" mapstructure:"-"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// HTTPConfig holds outbound client configuration.
type HTTPConfig struct {
	// TimeoutSeconds bounds one provider round trip. Zero disables the timeout.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ProviderValues holds one string per provider tag.
type ProviderValues struct {
	OpenAI     string `json:"openai" mapstructure:"openai"`
	Gemini     string `json:"gemini" mapstructure:"gemini"`
	OpenRouter string `json:"openrouter" mapstructure:"openrouter"`
}

// Get returns the value configured for provider.
func (v ProviderValues) Get(provider domain.ProviderType) string {
	switch provider {
	case domain.ProviderOpenAI:
		return v.OpenAI
	case domain.ProviderGemini:
		return v.Gemini
	case domain.ProviderOpenRouter:
		return v.OpenRouter
	default:
		return ""
	}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// MetricsConfig holds Prometheus configuration.
type MetricsConfig struct {
	// Enabled exposes GET /metrics on the server.
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfigWithPath returns the singleton Configuration instance.
// An empty path searches the default locations.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = Load(configPath)
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// HTTPTimeout returns the outbound timeout as a duration.
func (c *Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Validate validates the configuration and returns an error if values are out of range.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.HTTP.TimeoutSeconds < 0 {
		validationErrors = append(validationErrors, "http.timeout_seconds cannot be negative")
	}

	for _, provider := range domain.KnownProviders() {
		endpoint := c.Endpoints.Get(provider)
		if endpoint == "" {
			continue
		}
		if !isValidBaseURL(endpoint) {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"endpoints.%s '%s' must be an absolute http(s) URL", provider, endpoint,
			))
		}
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

func isValidBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
