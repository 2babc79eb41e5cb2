// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hpn/hpn-llm-router/internal/domain"
)

// DefaultGeminiBaseURL is the default Gemini API endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter implements Adapter for Google Gemini generateContent.
// The whole transcript is flattened into a single text part and the
// credential travels as the "key" query parameter.
type GeminiAdapter struct {
	endpoint Endpoint
}

// NewGeminiAdapter creates a new GeminiAdapter.
func NewGeminiAdapter(opts ...Option) *GeminiAdapter {
	return &GeminiAdapter{endpoint: newEndpoint(DefaultGeminiBaseURL, opts)}
}

// Name returns the provider identifier.
func (g *GeminiAdapter) Name() domain.ProviderType {
	return domain.ProviderGemini
}

// URL returns the generateContent endpoint for model without the credential.
func (g *GeminiAdapter) URL(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.endpoint.BaseURL, url.PathEscape(model))
}

// BuildRequest wraps the flattened transcript in contents[0].parts[0].text.
// Temperature, tools, response_format and user are not transmitted.
func (g *GeminiAdapter) BuildRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	payload := GeminiRequest{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: flattenMessages(req.Messages)}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	endpoint := g.URL(req.Model) + "?key=" + url.QueryEscape(req.Credential)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}

// ExtractResult returns candidates[0].content.parts[0].text.
func (g *GeminiAdapter) ExtractResult(body []byte) (domain.Result, error) {
	var resp GeminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Result{}, &ExtractionError{Provider: g.Name(), Field: "body", Err: err}
	}
	if len(resp.Candidates) == 0 {
		return domain.Result{}, &ExtractionError{Provider: g.Name(), Field: "candidates[0]"}
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return domain.Result{}, &ExtractionError{Provider: g.Name(), Field: "candidates[0].content.parts[0]"}
	}
	return domain.TextResult(parts[0].Text), nil
}

// flattenMessages renders one "[role] content" line per message.
func flattenMessages(messages []domain.Message) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("[%s] %s", msg.Role, msg.Content)
	}
	return strings.Join(lines, "\n")
}

// ============================================================================
// Gemini API Types
// ============================================================================

// GeminiRequest represents a Gemini generateContent request.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiContent represents a content block in Gemini format.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of a content block.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiResponse represents a Gemini generateContent response.
type GeminiResponse struct {
	Candidates    []GeminiCandidate    `json:"candidates"`
	UsageMetadata *GeminiUsageMetadata `json:"usageMetadata,omitempty"`
}

// GeminiCandidate represents a single generated candidate.
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
	Index        int           `json:"index"`
}

// GeminiUsageMetadata contains token usage information.
type GeminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}
