// Package adapter provides implementations for external AI provider integrations.
package adapter

import "github.com/hpn/hpn-llm-router/internal/domain"

// OpenAI-compatible chat completion wire types.
// OpenRouter speaks the same envelope, so both adapters share them.

// ChatCompletionRequest is the body of POST /chat/completions.
type ChatCompletionRequest struct {
	// Model specifies which model to use.
	Model string `json:"model"`

	// Messages is forwarded verbatim.
	Messages []domain.Message `json:"messages"`

	// Tools are provider-specific tool descriptors. Optional.
	Tools []map[string]any `json:"tools,omitempty"`

	// ResponseFormat constrains the output shape. Optional.
	ResponseFormat map[string]any `json:"response_format,omitempty"`

	// Temperature controls randomness. Optional.
	Temperature *float64 `json:"temperature,omitempty"`

	// User carries the base64-encoded caller tag. Optional.
	User string `json:"user,omitempty"`
}

// ChatCompletionResponse is the body of a successful chat completion.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

// ChatChoice represents a single completion choice.
type ChatChoice struct {
	Index   int         `json:"index"`
	Message ChatMessage `json:"message"`

	// FinishReason values: "stop", "length", "tool_calls", "content_filter".
	FinishReason string `json:"finish_reason"`
}

// ChatMessage is the assistant message inside a choice.
// Content is a pointer because providers send null when the model calls a tool.
type ChatMessage struct {
	Role         string         `json:"role"`
	Content      *string        `json:"content"`
	ToolCalls    []ChatToolCall `json:"tool_calls,omitempty"`
	FunctionCall *FunctionCall  `json:"function_call,omitempty"`
}

// ChatToolCall is one tool invocation requested by the model.
type ChatToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall represents a function call made by the model.
type FunctionCall struct {
	// Name is the function name to call.
	Name string `json:"name"`

	// Arguments is the JSON string of function arguments.
	Arguments string `json:"arguments"`
}

// ChatUsage contains token usage statistics.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
