package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/hpn/hpn-llm-router/internal/domain"
)

// chatCompletionsPath is appended to the base URL of OpenAI-style providers.
const chatCompletionsPath = "/v1/chat/completions"

// buildChatRequest encodes the shared OpenAI-style envelope. Only the
// Authorization header value differs between providers.
func buildChatRequest(ctx context.Context, provider domain.ProviderType, url string, req domain.Request, authorization string) (*http.Request, error) {
	payload := ChatCompletionRequest{
		Model:          req.Model,
		Messages:       req.Messages,
		Tools:          req.Tools,
		ResponseFormat: req.ResponseFormat,
		Temperature:    req.Temperature,
	}
	if req.User != "" {
		payload.User = EncodeUserTag(req.User)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s http request: %w", provider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", authorization)

	return httpReq, nil
}

// decodeFirstChoice parses a chat completion body and returns the message
// of its first choice.
func decodeFirstChoice(provider domain.ProviderType, body []byte) (ChatMessage, error) {
	var resp ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ChatMessage{}, &ExtractionError{Provider: provider, Field: "body", Err: err}
	}
	if len(resp.Choices) == 0 {
		return ChatMessage{}, &ExtractionError{Provider: provider, Field: "choices[0]"}
	}
	return resp.Choices[0].Message, nil
}
