// Package domain contains the core business entities and value objects.
package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Message is a single transcript entry.
type Message struct {
	// Role is passed through untouched (e.g. "system", "user", "assistant").
	Role string `json:"role" yaml:"role" mapstructure:"role" binding:"required"`

	// Content is the message text.
	Content string `json:"content" yaml:"content" mapstructure:"content"`
}

// Request is the provider-agnostic description of one generation call.
// It is built fresh per call and never mutated by the router or adapters.
type Request struct {
	// Provider selects the adapter.
	Provider ProviderType `json:"provider" yaml:"provider" mapstructure:"provider" binding:"required"`

	// Model is the provider-native model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model" binding:"required"`

	// Credential is the provider API key. It is supplied by the caller and
	// never read from the environment by the core.
	Credential string `json:"credential,omitempty" yaml:"credential,omitempty" mapstructure:"credential"`

	// Messages is the ordered transcript.
	Messages []Message `json:"messages" yaml:"messages" mapstructure:"messages" binding:"required,min=1,dive"`

	// Temperature is optional; nil means "provider default".
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" mapstructure:"temperature"`

	// User is an opaque caller tag forwarded to chat-completion providers.
	User string `json:"user,omitempty" yaml:"user,omitempty" mapstructure:"user"`

	// Tools are provider-specific tool descriptors (OpenAI only).
	Tools []map[string]any `json:"tools,omitempty" yaml:"tools,omitempty" mapstructure:"tools"`

	// ResponseFormat is a provider-specific schema descriptor (OpenAI only).
	ResponseFormat map[string]any `json:"response_format,omitempty" yaml:"response_format,omitempty" mapstructure:"response_format"`
}

// ParseRequestYAML decodes a request description. JSON input is accepted
// as well since it is a subset of YAML.
func ParseRequestYAML(data []byte) (Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	req.Provider = ParseProviderType(string(req.Provider))
	return req, nil
}

// LoadRequestFile reads and decodes a request description from disk.
func LoadRequestFile(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read request file: %w", err)
	}
	return ParseRequestYAML(data)
}
