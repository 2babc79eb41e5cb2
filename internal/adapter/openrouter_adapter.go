package adapter

import (
	"context"
	"net/http"

	"github.com/hpn/hpn-llm-router/internal/domain"
)

// DefaultOpenRouterBaseURL is the default OpenRouter API endpoint.
const DefaultOpenRouterBaseURL = "https://openrouter.ai/api"

// OpenRouterAdapter implements Adapter for OpenRouter's OpenAI-compatible API.
// It shares the OpenAI envelope but authenticates with a bearer token.
type OpenRouterAdapter struct {
	endpoint Endpoint
}

// NewOpenRouterAdapter creates an OpenRouterAdapter.
func NewOpenRouterAdapter(opts ...Option) *OpenRouterAdapter {
	return &OpenRouterAdapter{endpoint: newEndpoint(DefaultOpenRouterBaseURL, opts)}
}

// Name returns the provider tag.
func (a *OpenRouterAdapter) Name() domain.ProviderType {
	return domain.ProviderOpenRouter
}

// URL returns the chat completions endpoint.
func (a *OpenRouterAdapter) URL() string {
	return a.endpoint.BaseURL + chatCompletionsPath
}

// BuildRequest sends the OpenAI envelope with a bearer credential.
func (a *OpenRouterAdapter) BuildRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	return buildChatRequest(ctx, a.Name(), a.URL(), req, "Bearer "+req.Credential)
}

// ExtractResult returns the first choice's content with no tool-call handling.
func (a *OpenRouterAdapter) ExtractResult(body []byte) (domain.Result, error) {
	msg, err := decodeFirstChoice(a.Name(), body)
	if err != nil {
		return domain.Result{}, err
	}
	if msg.Content == nil {
		return domain.TextResult(""), nil
	}
	return domain.TextResult(*msg.Content), nil
}
