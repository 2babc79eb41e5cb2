package domain

import "fmt"

// Result is the normalized outcome of a dispatch.
// Either Text holds free-form model output, or ToolCall is set and Value
// holds the "response" field of the tool invocation's arguments.
type Result struct {
	Text     string
	Value    any
	ToolCall bool
}

// TextResult wraps plain model output.
func TextResult(text string) Result {
	return Result{Text: text}
}

// ToolResult wraps a value extracted from a tool invocation.
func ToolResult(value any) Result {
	return Result{Value: value, ToolCall: true}
}

// IsEmpty reports whether the provider returned neither text nor a tool call.
func (r Result) IsEmpty() bool {
	return !r.ToolCall && r.Text == ""
}

// String renders the result for display.
func (r Result) String() string {
	if r.ToolCall {
		if s, ok := r.Value.(string); ok {
			return s
		}
		return fmt.Sprint(r.Value)
	}
	return r.Text
}
