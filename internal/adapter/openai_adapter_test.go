package adapter

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, req *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestOpenAIAdapter_BuildRequest(t *testing.T) {
	a := NewOpenAIAdapter()

	req, err := a.BuildRequest(context.Background(), domain.Request{
		Provider:    domain.ProviderOpenAI,
		Model:       "gpt-4o-mini",
		Credential:  "sk-raw-credential",
		Messages:    []domain.Message{{Role: "system", Content: "Be brief."}, {Role: "user", Content: "Hi"}},
		Temperature: ptrFloat(0.2),
		User:        "tenant-42",
		Tools: []map[string]any{
			{"type": "function", "function": map[string]any{"name": "answer"}},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", req.URL.String())
	assert.Equal(t, "sk-raw-credential", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	body := decodeBody(t, req)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, 0.2, body["temperature"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
	assert.Len(t, body["tools"], 1)

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, map[string]any{"role": "system", "content": "Be brief."}, messages[0])

	user, ok := body["user"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "tenant-42", user)
	decoded, err := DecodeUserTag(user)
	require.NoError(t, err)
	assert.Equal(t, "tenant-42", decoded)
}

func TestOpenAIAdapter_BuildRequestOmitsUnsetOptionals(t *testing.T) {
	a := NewOpenAIAdapter(WithBaseURL("http://localhost:9999/"))

	req, err := a.BuildRequest(context.Background(), domain.Request{
		Model:      "gpt-4o",
		Credential: "k",
		Messages:   []domain.Message{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1/chat/completions", req.URL.String())

	body := decodeBody(t, req)
	for _, field := range []string{"temperature", "tools", "response_format", "user"} {
		assert.NotContains(t, body, field)
	}
}

func TestOpenAIAdapter_ExtractResult(t *testing.T) {
	a := NewOpenAIAdapter()

	tests := []struct {
		name string
		body string
		want domain.Result
	}{
		{
			name: "text content",
			body: `{"choices":[{"index":0,"message":{"role":"assistant","content":"Paris"},"finish_reason":"stop"}]}`,
			want: domain.TextResult("Paris"),
		},
		{
			name: "tool call with boolean response",
			body: `{"choices":[{"message":{"role":"assistant","content":null,"tool_calls":[{"id":"call_1","type":"function","function":{"name":"answer","arguments":"{\"response\": true}"}}]}}]}`,
			want: domain.ToolResult(true),
		},
		{
			name: "tool call with object response",
			body: `{"choices":[{"message":{"content":null,"tool_calls":[{"function":{"name":"answer","arguments":"{\"response\":{\"city\":\"Paris\"}}"}}]}}]}`,
			want: domain.ToolResult(map[string]any{"city": "Paris"}),
		},
		{
			name: "legacy function_call",
			body: `{"choices":[{"message":{"content":null,"function_call":{"name":"answer","arguments":"{\"response\":\"Paris\"}"}}}]}`,
			want: domain.ToolResult("Paris"),
		},
		{
			name: "empty content falls through to tool call",
			body: `{"choices":[{"message":{"content":"","tool_calls":[{"function":{"arguments":"{\"response\":1}"}}]}}]}`,
			want: domain.ToolResult(float64(1)),
		},
		{
			name: "neither text nor tool call",
			body: `{"choices":[{"message":{"role":"assistant","content":null}}]}`,
			want: domain.Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.ExtractResult([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAIAdapter_ExtractResultMalformed(t *testing.T) {
	a := NewOpenAIAdapter()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `<html>`, "body"},
		{"no choices", `{"choices":[]}`, "choices[0]"},
		{"empty tool call list", `{"choices":[{"message":{"content":null,"tool_calls":[]}}]}`, "choices[0].message.tool_calls[0]"},
		{"arguments not json", `{"choices":[{"message":{"content":null,"tool_calls":[{"function":{"arguments":"nope"}}]}}]}`, "tool call arguments"},
		{"arguments without response", `{"choices":[{"message":{"content":null,"tool_calls":[{"function":{"arguments":"{\"answer\":1}"}}]}}]}`, "tool call arguments.response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.ExtractResult([]byte(tt.body))
			require.Error(t, err)

			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, tt.field, extractErr.Field)
			assert.Equal(t, domain.ProviderOpenAI, extractErr.Provider)
		})
	}
}

func TestOpenAIAdapter_Name(t *testing.T) {
	assert.Equal(t, domain.ProviderOpenAI, NewOpenAIAdapter().Name())
}

func ptrFloat(f float64) *float64 {
	return &f
}
