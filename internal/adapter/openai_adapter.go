package adapter

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/hpn/hpn-llm-router/internal/domain"
)

// DefaultOpenAIBaseURL is the default OpenAI API endpoint.
const DefaultOpenAIBaseURL = "https://api.openai.com"

// toolResponseField is the argument the tool-calling contract returns its answer in.
const toolResponseField = "response"

// OpenAIAdapter implements Adapter for the OpenAI chat completions API.
// The credential is sent as the raw Authorization header value.
type OpenAIAdapter struct {
	endpoint Endpoint
}

// NewOpenAIAdapter creates an OpenAIAdapter.
func NewOpenAIAdapter(opts ...Option) *OpenAIAdapter {
	return &OpenAIAdapter{endpoint: newEndpoint(DefaultOpenAIBaseURL, opts)}
}

// Name returns the provider identifier.
func (a *OpenAIAdapter) Name() domain.ProviderType {
	return domain.ProviderOpenAI
}

// URL returns the completions endpoint.
func (a *OpenAIAdapter) URL() string {
	return a.endpoint.BaseURL + chatCompletionsPath
}

// BuildRequest encodes model, messages, tools, response_format, temperature and user.
func (a *OpenAIAdapter) BuildRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	return buildChatRequest(ctx, a.Name(), a.URL(), req, req.Credential)
}

// ExtractResult returns the first choice's text. When the model answered with
// a tool call instead, the call's JSON arguments are parsed and their
// "response" field is returned. A message with neither yields an empty result.
func (a *OpenAIAdapter) ExtractResult(body []byte) (domain.Result, error) {
	msg, err := decodeFirstChoice(a.Name(), body)
	if err != nil {
		return domain.Result{}, err
	}

	if msg.Content != nil && *msg.Content != "" {
		return domain.TextResult(*msg.Content), nil
	}

	call, err := a.functionCall(msg)
	if err != nil {
		return domain.Result{}, err
	}
	if call == nil {
		return domain.Result{}, nil
	}

	return a.parseToolResponse(call.Arguments)
}

// functionCall picks the invocation to read. tool_calls wins over the legacy
// function_call field. An explicitly empty tool_calls list is malformed.
func (a *OpenAIAdapter) functionCall(msg ChatMessage) (*FunctionCall, error) {
	if msg.ToolCalls != nil {
		if len(msg.ToolCalls) == 0 {
			return nil, &ExtractionError{Provider: a.Name(), Field: "choices[0].message.tool_calls[0]"}
		}
		return &msg.ToolCalls[0].Function, nil
	}
	return msg.FunctionCall, nil
}

func (a *OpenAIAdapter) parseToolResponse(arguments string) (domain.Result, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return domain.Result{}, &ExtractionError{Provider: a.Name(), Field: "tool call arguments", Err: err}
	}

	value, ok := args[toolResponseField]
	if !ok {
		return domain.Result{}, &ExtractionError{Provider: a.Name(), Field: "tool call arguments." + toolResponseField}
	}

	return domain.ToolResult(value), nil
}
