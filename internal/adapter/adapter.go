// Package adapter provides implementations for external AI provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/hpn/hpn-llm-router/internal/domain"
)

// Adapter translates between the provider-agnostic request shape and one
// provider's native HTTP contract. Implementations hold no per-call state
// and are safe for concurrent use.
type Adapter interface {
	// Name returns the provider tag this adapter serves.
	Name() domain.ProviderType

	// BuildRequest maps the request onto the provider's native envelope.
	// The returned request is bound to ctx.
	BuildRequest(ctx context.Context, req domain.Request) (*http.Request, error)

	// ExtractResult normalizes a successful response body.
	ExtractResult(body []byte) (domain.Result, error)
}

// Endpoint describes where an adapter sends its requests.
type Endpoint struct {
	BaseURL string
}

// Option is a functional option for configuring an adapter's endpoint.
type Option func(*Endpoint)

// WithBaseURL overrides the provider's default base URL.
// Empty values are ignored so config defaults can be passed through blindly.
func WithBaseURL(url string) Option {
	return func(e *Endpoint) {
		if url = strings.TrimSpace(url); url != "" {
			e.BaseURL = strings.TrimSuffix(url, "/")
		}
	}
}

func newEndpoint(defaultBaseURL string, opts []Option) Endpoint {
	e := Endpoint{BaseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// DefaultBaseURL returns the built-in base URL for a known provider, or "".
func DefaultBaseURL(provider domain.ProviderType) string {
	switch provider {
	case domain.ProviderOpenAI:
		return DefaultOpenAIBaseURL
	case domain.ProviderGemini:
		return DefaultGeminiBaseURL
	case domain.ProviderOpenRouter:
		return DefaultOpenRouterBaseURL
	default:
		return ""
	}
}
